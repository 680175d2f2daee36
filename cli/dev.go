package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/team"
	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier/groth16"
)

const provingKeyFile = "groth16.pk"

func newDevCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Local attestation helpers (trusted attestor mode)",
	}
	cmd.AddCommand(newDevSetupCmd(v), newDevAttestCmd(v))
	return cmd
}

func newDevSetupCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Generate the Groth16 key pair for local attestation",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(v)
			if err != nil {
				return err
			}

			slog.Info("compiling claim circuit and running key ceremony")
			prover, vk, err := groth16.Setup()
			if err != nil {
				return err
			}

			pkFile, err := os.OpenFile(filepath.Join(dir, provingKeyFile), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return fmt.Errorf("creating proving key file: %w", err)
			}
			defer pkFile.Close()
			if err := prover.WriteKey(pkFile); err != nil {
				return err
			}

			vkFile, err := os.OpenFile(filepath.Join(dir, verifyingKeyFile), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return fmt.Errorf("creating verifying key file: %w", err)
			}
			defer vkFile.Close()
			if err := groth16.WriteVerifyingKey(vkFile, vk); err != nil {
				return err
			}

			cmd.Printf("keys written to %s\n", dir)
			return nil
		},
	}
}

func newDevAttestCmd(v *viper.Viper) *cobra.Command {
	var (
		players   string
		contentID string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "attest",
		Short: "Produce a seal for a team composition",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := types.ParseRoster(players)
			if err != nil {
				return err
			}
			teamContentID, err := types.ParseContentID(contentID)
			if err != nil {
				return err
			}

			dir, err := dataDir(v)
			if err != nil {
				return err
			}
			pkFile, err := os.Open(filepath.Join(dir, provingKeyFile))
			if err != nil {
				return fmt.Errorf("opening proving key (run `lineup dev setup` first): %w", err)
			}
			defer pkFile.Close()
			pk, err := groth16.ReadProvingKey(pkFile)
			if err != nil {
				return err
			}
			prover, err := groth16.NewProver(pk)
			if err != nil {
				return err
			}

			digest, err := team.Journal{ContentID: teamContentID, Roster: roster}.Digest()
			if err != nil {
				return err
			}
			seal, err := prover.Attest(team.ImageIDV1, digest)
			if err != nil {
				return err
			}
			if err := writeSealFile(out, team.ImageIDV1, seal); err != nil {
				return err
			}

			cmd.Printf("seal written to %s (%d bytes)\n", out, len(seal))
			return nil
		},
	}
	cmd.Flags().StringVar(&players, "players", "", "comma separated roster of 11 player ids")
	cmd.Flags().StringVar(&contentID, "content-id", "", "team content id (0x hex, 32 bytes)")
	cmd.Flags().StringVar(&out, "out", "seal.bin", "output seal file")
	for _, flag := range []string{"players", "content-id"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

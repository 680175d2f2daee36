package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/team"
	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier/groth16"
)

const verifyingKeyFile = "groth16.vk"

func newTeamCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Assemble proof-attested teams",
	}
	cmd.AddCommand(newTeamBuildCmd(v))
	return cmd
}

func newTeamBuildCmd(v *viper.Viper) *cobra.Command {
	var (
		players   string
		contentID string
		sealPath  string
		operator  string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a team from eleven players and a proof of its composition",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := types.ParseRoster(players)
			if err != nil {
				return err
			}
			teamContentID, err := types.ParseContentID(contentID)
			if err != nil {
				return err
			}
			if !common.IsHexAddress(operator) {
				return fmt.Errorf("invalid operator address %q", operator)
			}
			sealEnv, err := readSealFile(sealPath)
			if err != nil {
				return err
			}
			if sealEnv.ImageID != team.ImageIDV1 {
				return fmt.Errorf("seal was issued for proving program %s, this build verifies %s",
					sealEnv.ImageID, team.ImageIDV1)
			}
			caller, err := callerAddress(v)
			if err != nil {
				return err
			}

			dir, err := dataDir(v)
			if err != nil {
				return err
			}
			vkFile, err := os.Open(filepath.Join(dir, verifyingKeyFile))
			if err != nil {
				return fmt.Errorf("opening verifying key (run `lineup dev setup` first): %w", err)
			}
			defer vkFile.Close()
			vk, err := groth16.ReadVerifyingKey(vkFile)
			if err != nil {
				return err
			}

			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			builder, err := team.New(team.Config{
				Players:  store,
				Teams:    store,
				Verifier: groth16.NewVerifier(vk),
				Operator: common.HexToAddress(operator),
				ImageID:  team.ImageIDV1,
			})
			if err != nil {
				return err
			}

			id, err := builder.BuildTeam(cmd.Context(), caller, roster, teamContentID, sealEnv.Seal)
			if err != nil {
				return fmt.Errorf("building team: %w", err)
			}
			slog.Info("team recorded", "id", id, "owner", caller, "roster", roster)

			cmd.Printf("team %s recorded for %s\n", id, caller.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&players, "players", "", "comma separated roster of 11 player ids")
	cmd.Flags().StringVar(&contentID, "content-id", "", "team content id (0x hex, 32 bytes)")
	cmd.Flags().StringVar(&sealPath, "seal", "", "path to the seal file")
	cmd.Flags().StringVar(&operator, "operator", "", "builder operator address the caller has approved")
	for _, flag := range []string{"players", "content-id", "seal", "operator"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

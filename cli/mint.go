package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/player"
	"github.com/lineupzk/lineup-go/types"
)

func newMintCmd(v *viper.Viper) *cobra.Command {
	var (
		id   uint64
		meta string
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a player token from a metadata document",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerAddress(v)
			if err != nil {
				return err
			}
			p, err := player.Load(meta)
			if err != nil {
				return err
			}
			stats, err := p.CID()
			if err != nil {
				return err
			}

			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			contentHash := stats.ContentHash()
			if err := store.MintPlayer(cmd.Context(), caller, types.TokenID(id), contentHash); err != nil {
				return fmt.Errorf("minting player: %w", err)
			}
			slog.Info("player minted", "id", id, "owner", caller, "cid", stats.String())

			cmd.Printf("player %d minted to %s\n", id, caller.Hex())
			cmd.Printf("content hash: %s\n", contentHash)
			cmd.Printf("uri: %s\n", stats.URI())
			return nil
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "token id to mint")
	cmd.Flags().StringVar(&meta, "meta", "", "path to the player metadata JSON")
	_ = cmd.MarkFlagRequired("meta")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/types/hex"
)

func newShowCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Inspect registry state",
	}
	cmd.AddCommand(
		newShowPlayerCmd(v),
		newShowTeamCmd(v),
		newShowRootCmd(v),
		newShowSupplyCmd(v),
	)
	return cmd
}

func newShowPlayerCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "player <id>",
		Short: "Show a player token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := types.ParseTokenID(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			owner, err := store.OwnerOf(cmd.Context(), id)
			if err != nil {
				return err
			}
			contentHash, err := store.ContentHash(cmd.Context(), id)
			if err != nil {
				return err
			}
			uri, err := store.URI(cmd.Context(), id)
			if err != nil {
				return err
			}

			cmd.Printf("player:       %s\n", id)
			cmd.Printf("owner:        %s\n", owner.Hex())
			cmd.Printf("content hash: %s\n", contentHash)
			cmd.Printf("uri:          %s\n", uri)
			return nil
		},
	}
}

func newShowTeamCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "team <id>",
		Short: "Show a team token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := types.ParseTokenID(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			team, err := store.TeamByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			cmd.Printf("team:       %s\n", team.ID)
			cmd.Printf("owner:      %s\n", team.Owner.Hex())
			cmd.Printf("roster:     %s\n", team.Roster)
			cmd.Printf("content id: %s\n", team.ContentID)
			return nil
		},
	}
}

func newShowRootCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Show the registry state root",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			root, err := store.StateRoot(cmd.Context())
			if err != nil {
				return err
			}
			if root == nil {
				return fmt.Errorf("registry is empty")
			}
			cmd.Println(hex.Bytes(root).String())
			return nil
		},
	}
}

func newShowSupplyCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "Show minted token counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			players, err := store.TotalSupply(cmd.Context())
			if err != nil {
				return err
			}
			teams, err := store.TotalTeams(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("players: %d\n", players)
			cmd.Printf("teams:   %d\n", teams)
			return nil
		},
	}
}

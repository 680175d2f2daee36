package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/types"
)

func newTransferCmd(v *viper.Viper) *cobra.Command {
	var (
		id uint64
		to string
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a player token to another address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(to) {
				return fmt.Errorf("invalid recipient address %q", to)
			}
			caller, err := callerAddress(v)
			if err != nil {
				return err
			}

			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Transfer(cmd.Context(), caller, common.HexToAddress(to), types.TokenID(id)); err != nil {
				return fmt.Errorf("transferring player: %w", err)
			}
			cmd.Printf("player %d transferred to %s\n", id, to)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "token id to transfer")
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

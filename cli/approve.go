package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newApproveCmd(v *viper.Viper) *cobra.Command {
	var (
		operator string
		revoke   bool
	)
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Grant (or revoke) blanket delegation to an operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(operator) {
				return fmt.Errorf("invalid operator address %q", operator)
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

			if err := store.SetApprovalForAll(cmd.Context(), caller, common.HexToAddress(operator), !revoke); err != nil {
				return fmt.Errorf("setting approval: %w", err)
			}
			if revoke {
				cmd.Printf("approval of %s revoked\n", operator)
			} else {
				cmd.Printf("operator %s approved for all tokens of %s\n", operator, caller.Hex())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "operator address")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "revoke instead of grant")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}

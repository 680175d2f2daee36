package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const keyFile = "key.hex"

func newKeygenCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the local secp256k1 key and print its address",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(v)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, keyFile)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("key file %s already exists", path)
			}

			key, err := crypto.GenerateKey()
			if err != nil {
				return fmt.Errorf("generating key: %w", err)
			}
			if err := os.WriteFile(path, []byte(hex.EncodeToString(crypto.FromECDSA(key))), 0600); err != nil {
				return fmt.Errorf("writing key file: %w", err)
			}

			cmd.Println(crypto.PubkeyToAddress(key.PublicKey).Hex())
			return nil
		},
	}
}

// callerAddress loads the local key and derives the caller address.
func callerAddress(v *viper.Viper) (common.Address, error) {
	dir, err := dataDir(v)
	if err != nil {
		return common.Address{}, err
	}
	data, err := os.ReadFile(filepath.Join(dir, keyFile))
	if err != nil {
		return common.Address{}, fmt.Errorf("reading key file (run `lineup keygen` first): %w", err)
	}
	key, err := crypto.HexToECDSA(string(data))
	if err != nil {
		return common.Address{}, fmt.Errorf("parsing key file: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

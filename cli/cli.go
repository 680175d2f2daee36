/*
Package cli implements the lineup command line tool: a local player
registry, the team building flow and the dev attestation helpers.
*/
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lineupzk/lineup-go/player"
	"github.com/lineupzk/lineup-go/registry/badger"
)

// New builds the lineup root command.
func New() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "lineup",
		Short:         "Mint player tokens and assemble proof-attested teams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, v); err != nil {
				return err
			}
			setupLogging(v.GetString("log_level"), v.GetString("log_format"))
			return nil
		},
	}

	cmd.PersistentFlags().String("data-dir", defaultDataDir(), "data directory")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	cmd.PersistentFlags().String("config", "", "config file")

	cmd.AddCommand(
		newKeygenCmd(v),
		newMintCmd(v),
		newApproveCmd(v),
		newTransferCmd(v),
		newTeamCmd(v),
		newShowCmd(v),
		newDevCmd(v),
	)
	return cmd
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("LINEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flag, key := range map[string]string{
		"data-dir":   "data_dir",
		"log-level":  "log_level",
		"log-format": "log_format",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding %s flag: %w", flag, err)
		}
	}

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func setupLogging(level, format string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lineup"
	}
	return filepath.Join(home, ".lineup")
}

func dataDir(v *viper.Viper) (string, error) {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// openStore opens the badger registry under the data directory. The
// caller owns the returned store.
func openStore(v *viper.Viper) (*badger.Store, error) {
	dir, err := dataDir(v)
	if err != nil {
		return nil, err
	}
	return badger.Open(badger.Config{
		Path:    filepath.Join(dir, "registry"),
		URIFunc: player.FormatURI,
	})
}

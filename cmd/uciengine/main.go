// Command uciengine runs the chess engine's UCI protocol front-end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hailam/chessplay/internal/applog"
	"github.com/hailam/chessplay/internal/config"
	"github.com/hailam/chessplay/internal/uci"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	root := &cobra.Command{
		Use:   "uciengine",
		Short: "A UCI chess engine",
		RunE:  runUCI,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUCI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := applog.Init(cfg.LogLevel)
	log.Info().Str("version", version).Msg("starting engine")

	engine := uci.New(os.Stdin, os.Stdout, log, cfg.HashSizeMB*1024*1024)
	defer engine.Close()

	engine.Run()
	return nil
}

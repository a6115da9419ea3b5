package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/brochure/config"
)

const defaultEnvFile = ".env"

// addConfigFlags registers the flags shared by every command that loads a
// configuration.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file (defaults apply when omitted)")
	cmd.Flags().String("env-file", defaultEnvFile, "dotenv file loaded before the config is parsed")
	cmd.Flags().String("content-dir", "", "content directory (overrides content_dir)")
	cmd.Flags().String("listen-ip", "", "IP address to bind (overrides listen_ip)")
	cmd.Flags().Int("listen-port", 0, "TCP port to bind (overrides listen_port)")
}

// loadConfig loads the env file and the config file named by the flags,
// then applies flag overrides.
//
// A missing env file is ignored unless --env-file was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if cmd.Flags().Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load env file: %w", err)
			}
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("content-dir") {
		cfg.ContentDir, _ = cmd.Flags().GetString("content-dir")
	}
	if cmd.Flags().Changed("listen-ip") {
		cfg.ListenIP, _ = cmd.Flags().GetString("listen-ip")
	}
	if cmd.Flags().Changed("listen-port") {
		cfg.ListenPort, _ = cmd.Flags().GetInt("listen-port")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the CLI logger described by cfg.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

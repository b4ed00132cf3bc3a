package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/app"
	fundapp "github.com/iov-one/peerfund/cmd/peerfund/app"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/store/iavl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome      = "home"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagChainID   = "chain-id"

	configFile = "config.toml"
	envPrefix  = "PEERFUND"
)

// config is the process configuration, read from flags, environment and
// the config.toml file under home, in that order of precedence.
type config struct {
	Home      string
	LogLevel  string
	LogFormat string
	ChainID   string
}

func newRootCmd() *cobra.Command {
	var (
		v   = viper.New()
		cfg config
	)

	root := &cobra.Command{
		Use:           "peerfund",
		Short:         "Peer reviewed research funding ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".peerfund")
	flags := root.PersistentFlags()
	flags.String(flagHome, defaultHome, "directory to store files under")
	flags.String(flagLogLevel, "info", "log level: debug, info, error or none")
	flags.String(flagLogFormat, "plain", "log format: plain or json")
	flags.String(flagChainID, "", "expected chain id, checked against the stored state")
	for key, flag := range map[string]string{
		"home":       flagHome,
		"log_level":  flagLogLevel,
		"log_format": flagLogFormat,
		"chain_id":   flagChainID,
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	root.AddCommand(
		initCmd(&cfg),
		execCmd(&cfg),
		queryCmd(&cfg),
		versionCmd(),
	)
	return root
}

// loadConfig merges the config file found under the configured home
// into v and returns the resulting configuration.
func loadConfig(v *viper.Viper) (config, error) {
	home := v.GetString("home")
	path := filepath.Join(home, configFile)
	switch _, err := os.Stat(path); {
	case err == nil:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, errors.Wrapf(errors.ErrInvalidInput, "read %s: %s", path, err)
		}
	case !os.IsNotExist(err):
		return config{}, errors.Wrapf(errors.ErrInvalidInput, "config %s: %s", path, err)
	}
	return config{
		Home:      home,
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		ChainID:   v.GetString("chain_id"),
	}, nil
}

// newLogger returns a logger writing to stderr, filtered by the
// configured level.
func newLogger(cfg config) (log.Logger, error) {
	var logger log.Logger
	switch cfg.LogFormat {
	case "", "plain":
		logger = log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	case "json":
		logger = log.NewTMJSONLogger(log.NewSyncWriter(os.Stderr))
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "log format %q", cfg.LogFormat)
	}
	opt, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt).With("module", fundapp.Name), nil
}

// openApp opens the application stored under the configured home. When
// a chain id is configured, it must match the one stored.
func openApp(cfg config) (*app.StoreApp, iavl.CommitStore, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, iavl.CommitStore{}, err
	}
	s, kv, err := fundapp.Application(cfg.Home, logger)
	if err != nil {
		return nil, kv, err
	}
	if cfg.ChainID != "" && s.ChainID() != "" && s.ChainID() != cfg.ChainID {
		kv.Close()
		return nil, kv, errors.Wrapf(errors.ErrInvalidState, "state belongs to chain %q", s.ChainID())
	}
	return s, kv, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), peerfund.Version())
		},
	}
}

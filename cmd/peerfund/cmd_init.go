package main

import (
	"fmt"

	"github.com/iov-one/peerfund/app"
	"github.com/iov-one/peerfund/errors"
	"github.com/spf13/cobra"
)

const flagGenesis = "genesis"

func initCmd(cfg *config) *cobra.Command {
	var genesisFile string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the state from a genesis file",
		Long: `Initialize the state under home from a genesis file.

The chain id of the genesis file is used. If the genesis file does not
declare one, the configured chain id is used instead. A home can be
initialized only once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(genesisFile)
			if err != nil {
				return err
			}
			switch {
			case gen.ChainID == "":
				gen.ChainID = cfg.ChainID
			case cfg.ChainID != "" && cfg.ChainID != gen.ChainID:
				return errors.Wrapf(errors.ErrInvalidInput, "genesis chain id %q, configured %q", gen.ChainID, cfg.ChainID)
			}

			s, kv, err := openApp(*cfg)
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := s.InitChain(gen); err != nil {
				return err
			}
			id, err := s.Commit()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized chain %s at height %d in %s\n", gen.ChainID, id.Version, cfg.Home)
			return nil
		},
	}
	cmd.Flags().StringVar(&genesisFile, flagGenesis, "", "path to the genesis file")
	if err := cmd.MarkFlagRequired(flagGenesis); err != nil {
		panic(err)
	}
	return cmd
}

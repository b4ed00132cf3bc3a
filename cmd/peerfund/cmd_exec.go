package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/peerfund"
	fundapp "github.com/iov-one/peerfund/cmd/peerfund/app"
	"github.com/iov-one/peerfund/errors"
	"github.com/spf13/cobra"
)

const (
	flagSigner = "signer"
	flagPath   = "path"
)

// execResult is printed after a successful execution.
type execResult struct {
	Height int64       `json:"height"`
	Data   string      `json:"data,omitempty"`
	Log    string      `json:"log,omitempty"`
	Events []eventView `json:"events"`
}

type eventView struct {
	Type       string      `json:"type"`
	Attributes []attribute `json:"attributes"`
}

type attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func execCmd(cfg *config) *cobra.Command {
	var (
		signers []string
		path    string
	)
	cmd := &cobra.Command{
		Use:   "exec <message file>",
		Short: "Deliver a single message and commit the result",
		Long: `Deliver a single message, read as JSON from the given file, on behalf
of the signers. Use "-" to read the message from stdin. The state is
committed only if the delivery succeeds.

Signers are conditions in their human readable form, for example
sigs/ed25519/1F0A. Known message paths:

  ` + strings.Join(fundapp.Paths(), "\n  "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			msg, err := fundapp.DecodeMsg(path, raw)
			if err != nil {
				return err
			}
			conds := make([]peerfund.Condition, 0, len(signers))
			for _, s := range signers {
				c, err := peerfund.ParseCondition(s)
				if err != nil {
					return errors.Wrapf(err, "signer %q", s)
				}
				conds = append(conds, c)
			}

			s, kv, err := openApp(*cfg)
			if err != nil {
				return err
			}
			defer kv.Close()
			if s.ChainID() == "" {
				return errors.Wrap(errors.ErrInvalidState, "not initialized, run init first")
			}

			res, err := s.DeliverTx(fundapp.NewTx(msg, conds...))
			if err != nil {
				return err
			}
			id, err := s.Commit()
			if err != nil {
				return err
			}

			out := execResult{
				Height: id.Version,
				Log:    res.Log,
				Events: make([]eventView, 0, len(res.Events)),
			}
			if len(res.Data) != 0 {
				out.Data = strings.ToUpper(hex.EncodeToString(res.Data))
			}
			for _, e := range res.Events {
				ev := eventView{Type: e.Type}
				for _, a := range e.Attributes {
					ev.Attributes = append(ev.Attributes, attribute{Key: string(a.Key), Value: string(a.Value)})
				}
				out.Events = append(out.Events, ev)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringArrayVar(&signers, flagSigner, nil, "condition authorizing the message, can be repeated")
	cmd.Flags().StringVar(&path, flagPath, "", "path of the message")
	if err := cmd.MarkFlagRequired(flagPath); err != nil {
		panic(err)
	}
	return cmd
}

func readInput(name string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if name == "-" {
		raw, err = ioutil.ReadAll(os.Stdin)
	} else {
		raw, err = ioutil.ReadFile(name)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "read %s: %s", name, err)
	}
	return raw, nil
}

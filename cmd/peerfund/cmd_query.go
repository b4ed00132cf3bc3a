package main

import (
	"encoding/json"
	"io"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/x/cash"
	"github.com/iov-one/peerfund/x/fund"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/iov-one/peerfund/x/review"
	"github.com/spf13/cobra"
)

type queryFunc func(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error)

func queryCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the committed state, output is JSON",
	}

	sub := []struct {
		use   string
		short string
		args  cobra.PositionalArgs
		fn    queryFunc
	}{
		{"proposal <id>", "Show a proposal", cobra.ExactArgs(1), queryProposal},
		{"proposals", "List all proposals in submission order", cobra.NoArgs, queryProposals},
		{"reviews <address>", "List reviews written by a reviewer", cobra.ExactArgs(1), queryReviews},
		{"reviewer <address>", "Show the registry record of a reviewer", cobra.ExactArgs(1), queryReviewer},
		{"pool", "Show the funding pool balance", cobra.NoArgs, queryPool},
		{"wallet <address>", "Show the balance of a wallet", cobra.ExactArgs(1), queryWallet},
	}
	for _, q := range sub {
		fn := q.fn
		cmd.AddCommand(&cobra.Command{
			Use:   q.use,
			Short: q.short,
			Args:  q.args,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, kv, err := openApp(*cfg)
				if err != nil {
					return err
				}
				defer kv.Close()

				var res interface{}
				err = s.Query(func(db peerfund.ReadOnlyKVStore) error {
					var err error
					res, err = fn(db, args)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		})
	}
	return cmd
}

func queryProposal(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	return proposal.Get(db, args[0])
}

func queryProposals(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	ids, err := proposal.List(db)
	if err != nil {
		return nil, err
	}
	res := make([]*proposal.Proposal, 0, len(ids))
	for _, id := range ids {
		p, err := proposal.Get(db, id)
		if err != nil {
			return nil, errors.Wrapf(err, "proposal %q", id)
		}
		res = append(res, p)
	}
	return res, nil
}

func queryReviews(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	addr, err := peerfund.ParseAddress(args[0])
	if err != nil {
		return nil, err
	}
	reviews, err := review.Retrieve(db, addr)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*review.Review{}
	}
	return reviews, nil
}

func queryReviewer(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	addr, err := peerfund.ParseAddress(args[0])
	if err != nil {
		return nil, err
	}
	return registry.GetReviewer(db, addr)
}

type balanceView struct {
	Address peerfund.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

func queryPool(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	balance, err := fund.Balance(db)
	if err != nil {
		return nil, err
	}
	return balanceView{Address: fund.PoolAddress, Balance: balance}, nil
}

func queryWallet(db peerfund.ReadOnlyKVStore, args []string) (interface{}, error) {
	addr, err := peerfund.ParseAddress(args[0])
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	balance, err := cash.NewController().Balance(db, addr)
	if err != nil {
		return nil, err
	}
	return balanceView{Address: addr, Balance: balance}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidState, err.Error())
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

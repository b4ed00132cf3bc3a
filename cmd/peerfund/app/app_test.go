package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/app"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/iov-one/peerfund/store"
	"github.com/iov-one/peerfund/x/cash"
	"github.com/iov-one/peerfund/x/fund"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestDecodeMsg(t *testing.T) {
	addr := fundtest.NewCondition().Address()

	cases := map[string]struct {
		path    string
		raw     string
		wantErr *errors.Error
		want    peerfund.Msg
	}{
		"deposit": {
			path: "fund/deposit",
			raw:  `{"amount": 10}`,
			want: &fund.DepositMsg{Amount: 10},
		},
		"address in hex": {
			path: "registry/register_reviewer",
			raw:  fmt.Sprintf(`{"reviewer": %q}`, addr.String()),
			want: &registry.RegisterReviewerMsg{Reviewer: addr},
		},
		"unknown path": {
			path:    "fund/withdraw",
			raw:     `{}`,
			wantErr: errors.ErrNotFound,
		},
		"malformed content": {
			path:    "fund/allocate",
			raw:     `{"proposal_id": 4`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := DecodeMsg(tc.path, []byte(tc.raw))
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, msg)
				assert.Equal(t, tc.path, msg.Path())
			}
		})
	}
}

func TestPathsAreRouted(t *testing.T) {
	paths := Paths()
	assert.Len(t, paths, 7)

	// empty messages are rejected by their handlers, never by the router
	h := Stack(cash.NewController())
	for _, p := range paths {
		msg, err := DecodeMsg(p, []byte(`{}`))
		require.NoError(t, err, p)
		_, err = h.Check(context.Background(), store.MemStore(), NewTx(msg))
		require.Error(t, err, p)
		assert.NotContains(t, err.Error(), "no handler for message path", p)
	}
}

func TestTx(t *testing.T) {
	var empty Tx
	_, err := empty.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	signer := fundtest.NewCondition()
	tx := NewTx(&fund.AllocateMsg{ProposalID: "p1"}, signer)
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "fund/allocate", msg.Path())
	assert.Equal(t, []peerfund.Condition{signer}, tx.GetSigners())
}

// participants of a funding round
type participants struct {
	admin, governance, researcher, donor, reviewer peerfund.Condition
}

func newParticipants() participants {
	return participants{
		admin:      fundtest.NewCondition(),
		governance: fundtest.NewCondition(),
		researcher: fundtest.NewCondition(),
		donor:      fundtest.NewCondition(),
		reviewer:   fundtest.NewCondition(),
	}
}

func (p participants) genesis(t testing.TB) app.Genesis {
	t.Helper()
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"registry": map[string]interface{}{"admin": p.admin.Address()},
		},
		"registry": map[string]interface{}{
			"governance_members": []peerfund.Address{p.governance.Address()},
		},
		"cash": []cash.GenesisAccount{
			{Address: p.donor.Address(), Balance: 1000},
		},
	}
	var opts peerfund.Options
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &opts))
	return app.Genesis{ChainID: "peerfund-test", AppState: opts}
}

func deliver(t testing.TB, s *app.StoreApp, signer peerfund.Condition, path, raw string) *peerfund.DeliverResult {
	t.Helper()
	msg, err := DecodeMsg(path, []byte(raw))
	require.NoError(t, err)
	res, err := s.DeliverTx(NewTx(msg, signer))
	require.NoError(t, err, path)
	return res
}

func TestFundingRound(t *testing.T) {
	s, kv, err := Application("", log.NewNopLogger())
	require.NoError(t, err)
	defer kv.Close()

	p := newParticipants()
	require.NoError(t, s.InitChain(p.genesis(t)))
	assert.Equal(t, "peerfund-test", s.ChainID())

	deliver(t, s, p.admin, "registry/register_reviewer",
		fmt.Sprintf(`{"reviewer": %q}`, p.reviewer.Address()))
	deliver(t, s, p.researcher, "proposal/submit",
		`{"id": "p1", "title": "Soil microbes", "budget": 300}`)
	deliver(t, s, p.reviewer, "review/submit",
		`{"proposal_id": "p1", "document_id": "doc-1", "score": 90}`)
	deliver(t, s, p.governance, "reputation/update_trust",
		fmt.Sprintf(`{"reviewer": %q, "vote": 100}`, p.reviewer.Address()))
	deliver(t, s, p.donor, "fund/deposit", `{"amount": 500}`)

	res := deliver(t, s, p.admin, "fund/allocate", `{"proposal_id": "p1"}`)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "funds-allocated", res.Events[0].Type)

	// a proposal is funded once
	msg, err := DecodeMsg("fund/allocate", []byte(`{"proposal_id": "p1"}`))
	require.NoError(t, err)
	_, err = s.DeliverTx(NewTx(msg, p.admin))
	assert.True(t, fund.ErrAlreadyFunded.Is(err))

	id, err := s.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)

	control := cash.NewController()
	err = s.Query(func(db peerfund.ReadOnlyKVStore) error {
		pool, err := fund.Balance(db)
		require.NoError(t, err)
		assert.EqualValues(t, 200, pool)

		paid, err := control.Balance(db, p.researcher.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 300, paid)

		left, err := control.Balance(db, p.donor.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 500, left)

		prop, err := proposal.Get(db, "p1")
		require.NoError(t, err)
		assert.True(t, prop.Funded)
		assert.EqualValues(t, 90, prop.ScoreSum)
		assert.EqualValues(t, 1, prop.ReviewCount)

		rev, err := registry.GetReviewer(db, p.reviewer.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 75, rev.Trust)
		return nil
	})
	require.NoError(t, err)
}

func TestUnauthorizedDeliveryRollsBack(t *testing.T) {
	s, kv, err := Application("", log.NewNopLogger())
	require.NoError(t, err)
	defer kv.Close()

	p := newParticipants()
	require.NoError(t, s.InitChain(p.genesis(t)))

	msg, err := DecodeMsg("fund/deposit", []byte(fmt.Sprintf(`{"contributor": %q, "amount": 100}`, p.donor.Address())))
	require.NoError(t, err)
	_, err = s.DeliverTx(NewTx(msg, p.researcher))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	err = s.Query(func(db peerfund.ReadOnlyKVStore) error {
		pool, err := fund.Balance(db)
		require.NoError(t, err)
		assert.EqualValues(t, 0, pool)
		return nil
	})
	require.NoError(t, err)
}

func TestApplicationPersists(t *testing.T) {
	home, err := ioutil.TempDir("", "peerfund")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	p := newParticipants()

	s, kv, err := Application(home, log.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, s.InitChain(p.genesis(t)))
	deliver(t, s, p.donor, "fund/deposit", `{"amount": 40}`)
	_, err = s.Commit()
	require.NoError(t, err)
	kv.Close()

	s, kv, err = Application(home, log.NewNopLogger())
	require.NoError(t, err)
	defer kv.Close()
	assert.Equal(t, "peerfund-test", s.ChainID())

	err = s.Query(func(db peerfund.ReadOnlyKVStore) error {
		pool, err := fund.Balance(db)
		require.NoError(t, err)
		assert.EqualValues(t, 40, pool)
		return nil
	})
	require.NoError(t, err)

	// a store holds a single chain
	err = s.InitChain(p.genesis(t))
	assert.True(t, errors.ErrInvalidState.Is(err))
}

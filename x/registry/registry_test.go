package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/iov-one/peerfund/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genesis(t testing.TB, admin peerfund.Address, members ...peerfund.Address) peerfund.Options {
	t.Helper()
	conf, err := json.Marshal(map[string]interface{}{
		"registry": map[string]interface{}{"admin": admin},
	})
	require.NoError(t, err)
	state, err := json.Marshal(map[string]interface{}{
		"governance_members": members,
	})
	require.NoError(t, err)
	return peerfund.Options{"conf": conf, "registry": state}
}

func TestGenesis(t *testing.T) {
	admin := fundtest.NewCondition().Address()
	gov1 := fundtest.NewCondition().Address()
	gov2 := fundtest.NewCondition().Address()
	stranger := fundtest.NewCondition().Address()

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(genesis(t, admin, gov1, gov2), db))

	got, err := Admin(db)
	require.NoError(t, err)
	assert.Equal(t, admin, got)

	for addr, want := range map[string]bool{
		string(gov1):     true,
		string(gov2):     true,
		string(admin):    false,
		string(stranger): false,
		"":               false,
	} {
		ok, err := IsGovernanceMember(db, peerfund.Address(addr))
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
}

func TestGenesisRequiresAdmin(t *testing.T) {
	db := store.MemStore()
	err := Initializer{}.FromGenesis(peerfund.Options{}, db)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Initializer{}.FromGenesis(genesis(t, peerfund.Address{1, 2, 3}), db)
	assert.True(t, errors.ErrInvalidInput.Is(err))

	_, err = Admin(db)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRegisterReviewer(t *testing.T) {
	admin := fundtest.NewCondition()
	reviewer := fundtest.NewCondition().Address()

	cases := map[string]struct {
		signer         peerfund.Condition
		msg            peerfund.Msg
		prior          *Reviewer
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantTrust      uint32
	}{
		"admin registers a reviewer": {
			signer:    admin,
			msg:       &RegisterReviewerMsg{Reviewer: reviewer},
			wantTrust: InitialTrust,
		},
		"registering again resets trust": {
			signer:    admin,
			msg:       &RegisterReviewerMsg{Reviewer: reviewer},
			prior:     &Reviewer{Trust: 92, Registered: true},
			wantTrust: InitialTrust,
		},
		"implicit record becomes registered": {
			signer:    admin,
			msg:       &RegisterReviewerMsg{Reviewer: reviewer},
			prior:     &Reviewer{Trust: 12},
			wantTrust: InitialTrust,
		},
		"only admin": {
			signer:         fundtest.NewCondition(),
			msg:            &RegisterReviewerMsg{Reviewer: reviewer},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"caller is checked before the reviewer address": {
			signer:         fundtest.NewCondition(),
			msg:            &RegisterReviewerMsg{Reviewer: peerfund.Address{1, 2, 3}},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"malformed reviewer": {
			signer:         admin,
			msg:            &RegisterReviewerMsg{Reviewer: peerfund.Address{1, 2, 3}},
			wantCheckErr:   errors.ErrInvalidInput,
			wantDeliverErr: errors.ErrInvalidInput,
		},
		"missing reviewer": {
			signer:         admin,
			msg:            &RegisterReviewerMsg{},
			wantCheckErr:   errors.ErrEmpty,
			wantDeliverErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Initializer{}.FromGenesis(genesis(t, admin.Address()), db))
			if tc.prior != nil {
				require.NoError(t, NewReviewerBucket().Put(db, reviewer, tc.prior))
			}

			h := &registerReviewerHandler{
				auth:   &fundtest.Auth{Signer: tc.signer},
				bucket: NewReviewerBucket(),
			}
			tx := &fundtest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.True(t, tc.wantCheckErr.Is(err), "unexpected check error: %+v", err)
			cache.Discard()

			res, err := h.Deliver(context.Background(), db, tx)
			if !assert.True(t, tc.wantDeliverErr.Is(err), "unexpected deliver error: %+v", err) {
				return
			}

			ok, err := IsRegisteredReviewer(db, reviewer)
			require.NoError(t, err)
			if tc.wantDeliverErr != nil {
				assert.Equal(t, tc.prior != nil && tc.prior.Registered, ok)
				return
			}
			assert.True(t, ok)

			r, err := GetReviewer(db, reviewer)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTrust, r.Trust)

			require.Len(t, res.Events, 1)
			assert.Equal(t, "reviewer-registered", res.Events[0].Type)
			got, _ := res.Events[0].Attr("reviewer")
			assert.Equal(t, reviewer.String(), got)
		})
	}
}

func TestIsRegisteredReviewer(t *testing.T) {
	db := store.MemStore()
	b := NewReviewerBucket()
	registered := fundtest.NewCondition().Address()
	implicit := fundtest.NewCondition().Address()
	require.NoError(t, b.Put(db, registered, &Reviewer{Trust: 50, Registered: true}))
	require.NoError(t, b.Put(db, implicit, &Reviewer{Trust: 0}))

	cases := map[string]struct {
		addr peerfund.Address
		want bool
	}{
		"registered":      {addr: registered, want: true},
		"trust vote only": {addr: implicit, want: false},
		"unknown":         {addr: fundtest.NewCondition().Address(), want: false},
		"nil":             {addr: nil, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := IsRegisteredReviewer(db, tc.addr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := GetReviewer(db, fundtest.NewCondition().Address())
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore(0))
	assert.NoError(t, ValidateScore(MaxScore))
	assert.True(t, ErrInvalidScore.Is(ValidateScore(MaxScore+1)))
}

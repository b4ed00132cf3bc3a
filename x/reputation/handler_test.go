package reputation

import (
	"context"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/iov-one/peerfund/store"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTrust(t *testing.T) {
	cases := map[string]struct {
		current, vote, want uint32
	}{
		"up":           {current: 50, vote: 100, want: 75},
		"down rounds":  {current: 75, vote: 0, want: 37},
		"same":         {current: 40, vote: 40, want: 40},
		"from zero":    {current: 0, vote: 99, want: 49},
		"large values": {current: ^uint32(0), vote: ^uint32(0), want: ^uint32(0)},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, NextTrust(tc.current, tc.vote))
		})
	}
}

func TestUpdateTrust(t *testing.T) {
	governor := fundtest.NewCondition()
	reviewer := fundtest.NewCondition().Address()
	stranger := fundtest.NewCondition().Address()

	cases := map[string]struct {
		auth           *fundtest.Auth
		msg            *UpdateTrustMsg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantReviewer   *registry.Reviewer
		wantMember     peerfund.Address
	}{
		"registered reviewer": {
			auth:         &fundtest.Auth{Signer: governor},
			msg:          &UpdateTrustMsg{Reviewer: reviewer, Vote: 100},
			wantReviewer: &registry.Reviewer{Trust: 75, Registered: true},
			wantMember:   governor.Address(),
		},
		"governance member is not the main signer": {
			auth:         &fundtest.Auth{Signer: fundtest.NewCondition(), Signers: []peerfund.Condition{governor}},
			msg:          &UpdateTrustMsg{Reviewer: reviewer, Vote: 0},
			wantReviewer: &registry.Reviewer{Trust: 25, Registered: true},
			wantMember:   governor.Address(),
		},
		"unregistered principal starts from zero": {
			auth:         &fundtest.Auth{Signer: governor},
			msg:          &UpdateTrustMsg{Reviewer: stranger, Vote: 100},
			wantReviewer: &registry.Reviewer{Trust: 50, Registered: false},
			wantMember:   governor.Address(),
		},
		"not a governance member": {
			auth:           &fundtest.Auth{Signer: fundtest.NewCondition()},
			msg:            &UpdateTrustMsg{Reviewer: reviewer, Vote: 100},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantReviewer:   &registry.Reviewer{Trust: 50, Registered: true},
		},
		"authorization is checked before the vote": {
			auth:           &fundtest.Auth{},
			msg:            &UpdateTrustMsg{Reviewer: reviewer, Vote: 101},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantReviewer:   &registry.Reviewer{Trust: 50, Registered: true},
		},
		"vote above maximum": {
			auth:           &fundtest.Auth{Signer: governor},
			msg:            &UpdateTrustMsg{Reviewer: reviewer, Vote: 101},
			wantCheckErr:   registry.ErrInvalidScore,
			wantDeliverErr: registry.ErrInvalidScore,
			wantReviewer:   &registry.Reviewer{Trust: 50, Registered: true},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := registry.NewGovernanceBucket()
			require.NoError(t, b.Put(db, governor.Address(), &registry.GovernanceMember{Address: governor.Address()}))
			require.NoError(t, registry.NewReviewerBucket().Put(db, reviewer, &registry.Reviewer{Trust: 50, Registered: true}))

			h := &updateTrustHandler{auth: tc.auth, reviewers: registry.NewReviewerBucket()}
			tx := &fundtest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.True(t, tc.wantCheckErr.Is(err), "unexpected check error: %+v", err)
			cache.Discard()

			res, err := h.Deliver(context.Background(), db, tx)
			assert.True(t, tc.wantDeliverErr.Is(err), "unexpected deliver error: %+v", err)

			got, err := registry.GetReviewer(db, tc.msg.Reviewer)
			require.NoError(t, err)
			assert.Equal(t, tc.wantReviewer, got)
			if tc.wantDeliverErr != nil {
				return
			}

			ok, err := registry.IsRegisteredReviewer(db, tc.msg.Reviewer)
			require.NoError(t, err)
			assert.Equal(t, tc.wantReviewer.Registered, ok)

			require.Len(t, res.Events, 1)
			member, _ := res.Events[0].Attr("governance_member")
			assert.Equal(t, tc.wantMember.String(), member)
		})
	}
}

func TestTrustSequence(t *testing.T) {
	governor := fundtest.NewCondition()
	reviewer := fundtest.NewCondition().Address()

	db := store.MemStore()
	require.NoError(t, registry.NewGovernanceBucket().Put(db, governor.Address(), &registry.GovernanceMember{Address: governor.Address()}))
	require.NoError(t, registry.NewReviewerBucket().Put(db, reviewer, &registry.Reviewer{Trust: registry.InitialTrust, Registered: true}))

	h := &updateTrustHandler{auth: &fundtest.Auth{Signer: governor}, reviewers: registry.NewReviewerBucket()}
	for _, step := range []struct {
		vote, want uint32
	}{
		{vote: 100, want: 75},
		{vote: 0, want: 37},
	} {
		_, err := h.Deliver(context.Background(), db, &fundtest.Tx{
			Msg: &UpdateTrustMsg{Reviewer: reviewer, Vote: step.vote},
		})
		require.NoError(t, err)

		r, err := registry.GetReviewer(db, reviewer)
		require.NoError(t, err)
		assert.Equal(t, step.want, r.Trust)
	}
}

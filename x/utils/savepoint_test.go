package utils

import (
	"context"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/iov-one/peerfund/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before the handler is called
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.Wrap(errors.ErrInvalidState, "something went wrong")

	cases := map[string]struct {
		save    peerfund.Decorator
		handler peerfund.Handler
		check   bool
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled keeps writes of a failed check": {
			save:    NewSavepoint(),
			handler: fundtest.WriteHandler(nk, nv, derr),
			check:   true,
			wantErr: errors.ErrInvalidState,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back failed check": {
			save:    NewSavepoint().OnCheck(),
			handler: fundtest.WriteHandler(nk, nv, derr),
			check:   true,
			wantErr: errors.ErrInvalidState,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back failed deliver": {
			save:    NewSavepoint().OnDeliver(),
			handler: fundtest.WriteHandler(nk, nv, derr),
			wantErr: errors.ErrInvalidState,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviours": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: fundtest.WriteHandler(nk, nv, derr),
			wantErr: errors.ErrInvalidState,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: fundtest.WriteHandler(nk, nv, derr),
			wantErr: errors.ErrInvalidState,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: fundtest.WriteHandler(nk, nv, nil),
			written: [][]byte{ok, nk},
		},
		"panic is rolled back when recovered inside": {
			save:    NewSavepoint().OnDeliver(),
			handler: fundtest.Decorate(fundtest.PanicHandler("boom"), NewRecovery()),
			wantErr: errors.ErrPanic,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			h := fundtest.Decorate(tc.handler, tc.save)
			var err error
			if tc.check {
				_, err = h.Check(ctx, kv, &fundtest.Tx{})
			} else {
				_, err = h.Deliver(ctx, kv, &fundtest.Tx{})
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%X", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%X", k)
			}
		})
	}
}

func TestAtomicWithoutCache(t *testing.T) {
	db := store.EmptyKVStore{}
	called := false
	err := Atomic(db, func(kv peerfund.KVStore) error {
		called = true
		assert.Equal(t, db, kv)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("reviews", "id")
	b := NewSequence("reviews", "other")

	latest, err := a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), latest)

	var prev []byte
	for i := uint64(1); i <= 300; i++ {
		val, err := a.NextVal(db)
		require.NoError(t, err)
		assert.Equal(t, 1, bytes.Compare(val, prev))
		prev = val
	}

	n, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	latest, err = a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), latest)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("reviews", "id")
	require.NoError(t, db.Set(s.id, EncodeSequence(^uint64(0))))

	_, err := s.NextInt(db)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestDecodeSequence(t *testing.T) {
	_, err := DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrInvalidInput.Is(err))

	val, err := DecodeSequence(EncodeSequence(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), val)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixEnd([]byte("a")))
	assert.Equal(t, []byte{1, 3}, prefixEnd([]byte{1, 2, 0xFF}))
	assert.Nil(t, prefixEnd([]byte{0xFF, 0xFF}))
	assert.Nil(t, prefixEnd(nil))
}

package app

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/iov-one/peerfund/store/iavl"
	"github.com/iov-one/peerfund/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

type genesisWriter struct {
	key []byte
}

func (g genesisWriter) FromGenesis(opts peerfund.Options, db peerfund.KVStore) error {
	var value string
	if err := opts.ReadOptions("value", &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return db.Set(g.key, []byte(value))
}

func genesis(chainID, value string) Genesis {
	raw, _ := json.Marshal(value)
	return Genesis{
		ChainID:  chainID,
		AppState: peerfund.Options{"value": raw},
	}
}

func TestStoreAppLifecycle(t *testing.T) {
	db := iavl.NewCommitStoreFromDB(dbm.NewMemDB())

	k, v := []byte("pool"), []byte("1000")
	handler := ChainDecorators(utils.NewSavepoint().OnDeliver()).
		WithHandler(fundtest.WriteHandler(k, v, nil))

	s, err := NewStoreApp("peerfund", db, handler, context.Background())
	require.NoError(t, err)
	s.WithInit(genesisWriter{key: []byte("genesis")})
	assert.Equal(t, "", s.ChainID())

	require.NoError(t, s.InitChain(genesis("test-chain", "hello")))
	assert.Equal(t, "test-chain", s.ChainID())

	err = s.InitChain(genesis("other-chain", "hello"))
	assert.True(t, errors.ErrInvalidState.Is(err))

	// check does not write anything
	_, err = s.CheckTx(&fundtest.Tx{})
	require.NoError(t, err)
	assertValue(t, s, k, nil)

	_, err = s.DeliverTx(&fundtest.Tx{})
	require.NoError(t, err)
	assertValue(t, s, k, v)
	assertValue(t, s, []byte("genesis"), []byte("hello"))

	// nothing is persisted before the commit
	committed, err := db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, committed)

	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)

	committed, err = db.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, committed)
}

func TestStoreAppReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "peerfund-app-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db := iavl.NewCommitStore(dir, "state")
	s, err := NewStoreApp("peerfund", db, &fundtest.Handler{}, context.Background())
	require.NoError(t, err)
	s.WithInit(genesisWriter{key: []byte("genesis")})
	require.NoError(t, s.InitChain(genesis("reload-chain", "hello")))
	_, err = s.Commit()
	require.NoError(t, err)
	db.Close()

	db = iavl.NewCommitStore(dir, "state")
	defer db.Close()
	s, err = NewStoreApp("peerfund", db, &fundtest.Handler{}, context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reload-chain", s.ChainID())
	assertValue(t, s, []byte("genesis"), []byte("hello"))
}

func TestStoreAppFailedGenesis(t *testing.T) {
	db := iavl.NewCommitStoreFromDB(dbm.NewMemDB())
	s, err := NewStoreApp("peerfund", db, &fundtest.Handler{}, context.Background())
	require.NoError(t, err)

	err = s.InitChain(genesis("test-chain", "x"))
	assert.True(t, errors.ErrHuman.Is(err))

	s.WithInit(genesisWriter{key: []byte("genesis")})
	err = s.InitChain(genesis("test-chain", ""))
	assert.True(t, errors.ErrEmpty.Is(err))
	assert.Equal(t, "", s.ChainID())

	err = s.InitChain(genesis("bad id!", "x"))
	assert.True(t, errors.ErrInvalidInput.Is(err))

	// a failed genesis leaves nothing behind
	require.NoError(t, s.InitChain(genesis("test-chain", "x")))
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "peerfund-genesis-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	doc := `{"chain_id": "test-chain", "app_state": {"value": "hello"}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(doc), 0600))

	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)
	assert.JSONEq(t, `"hello"`, string(gen.AppState["value"]))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func assertValue(t testing.TB, s *StoreApp, key, want []byte) {
	t.Helper()
	err := s.Query(func(db peerfund.ReadOnlyKVStore) error {
		got, err := db.Get(key)
		if err != nil {
			return err
		}
		assert.Equal(t, want, got)
		return nil
	})
	require.NoError(t, err)
}

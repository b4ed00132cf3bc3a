package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

// Genesis is the document an application state is initialized from.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState peerfund.Options `json:"app_state"`
}

// LoadGenesis reads a genesis document from a JSON file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...peerfund.Initializer) peerfund.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []peerfund.Initializer
}

// FromGenesis passes opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts peerfund.Options, kv peerfund.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_internal:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv peerfund.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv peerfund.KVStore, chainID string) error {
	if !peerfund.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	switch has, err := kv.Has(k); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case has:
		return errors.Wrap(errors.ErrDuplicate, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}

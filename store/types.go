package store

import "github.com/iov-one/peerfund"

// Shorter names for the storage interfaces declared by the root package.

type (
	ReadOnlyKVStore  = peerfund.ReadOnlyKVStore
	SetDeleter       = peerfund.SetDeleter
	KVStore          = peerfund.KVStore
	Batch            = peerfund.Batch
	Iterator         = peerfund.Iterator
	CacheableKVStore = peerfund.CacheableKVStore
	KVCacheWrap      = peerfund.KVCacheWrap
	CommitKVStore    = peerfund.CommitKVStore
	CommitID         = peerfund.CommitID
)

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

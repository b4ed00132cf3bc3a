package store

// RecordingStore wraps a KVStore and remembers every key written or
// deleted through it. Deleted keys are recorded with a nil value.
type RecordingStore struct {
	KVStore
	changes map[string][]byte
}

var _ CacheableKVStore = (*RecordingStore)(nil)

// NewRecordingStore returns a store recording all changes made to db.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

// KVPairs returns all recorded changes, by key.
func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the change and passes it to the wrapped store.
func (r *RecordingStore) Set(key, value []byte) error {
	r.changes[string(key)] = value
	return r.KVStore.Set(key, value)
}

// Delete records the change and passes it to the wrapped store.
func (r *RecordingStore) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.KVStore.Delete(key)
}

// NewBatch returns a batch writing through the recorder.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap returns a cache whose changes are recorded once written.
func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}

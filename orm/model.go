package orm

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

// Model is implemented by any entity that can be stored using a
// ModelBucket.
type Model interface {
	peerfund.Persistent
	Validate() error
}

// ModelIterator walks over models stored in a bucket.
type ModelIterator interface {
	// Next loads the next model into dest and returns its primary key.
	// Returns errors.ErrIteratorDone when there are no more models.
	Next(dest Model) (key []byte, err error)

	// Release frees the resources of the iterator.
	Release()
}

// primaryIterator iterates directly over the bucket records.
type primaryIterator struct {
	it     peerfund.Iterator
	prefix []byte
}

func (i *primaryIterator) Next(dest Model) ([]byte, error) {
	if !i.it.Valid() {
		return nil, errors.ErrIteratorDone
	}
	key := i.it.Key()[len(i.prefix):]
	if err := load(i.it.Value(), dest); err != nil {
		return nil, errors.Wrapf(err, "key %X", key)
	}
	return key, i.it.Next()
}

func (i *primaryIterator) Release() {
	i.it.Close()
}

// indexIterator iterates over index entries and loads the referenced
// records.
type indexIterator struct {
	it     peerfund.Iterator
	db     peerfund.ReadOnlyKVStore
	bucket *ModelBucket
	prefix []byte
}

func (i *indexIterator) Next(dest Model) ([]byte, error) {
	if !i.it.Valid() {
		return nil, errors.ErrIteratorDone
	}
	key := i.it.Key()[len(i.prefix):]
	if err := i.bucket.One(i.db, key, dest); err != nil {
		return nil, errors.Wrap(err, "indexed record")
	}
	return key, i.it.Next()
}

func (i *indexIterator) Release() {
	i.it.Close()
}

func load(raw []byte, dest Model) error {
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// prefixEnd returns the smallest key that is bigger than all keys with
// the given prefix, or nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

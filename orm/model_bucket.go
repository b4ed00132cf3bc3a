package orm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Indexer computes the index value of a model. A nil value means the
// model is not indexed.
type Indexer func(Model) ([]byte, error)

// ModelBucket stores models of one type under a "<name>:" key prefix.
type ModelBucket struct {
	name    string
	prefix  []byte
	indexes map[string]index
}

type index struct {
	name   string
	prefix []byte
	fn     Indexer
	unique bool
}

// ModelBucketOption configures a ModelBucket.
type ModelBucketOption func(*ModelBucket)

// WithIndex maintains a secondary index of given name. Unique indexes
// reject two records with the same index value.
func WithIndex(name string, fn Indexer, unique bool) ModelBucketOption {
	return func(b *ModelBucket) {
		if _, ok := b.indexes[name]; ok {
			panic(fmt.Sprintf("index %q already declared in %q", name, b.name))
		}
		b.indexes[name] = index{
			name:   name,
			prefix: []byte("_i." + b.name + "_" + name + ":"),
			fn:     fn,
			unique: unique,
		}
	}
}

// NewModelBucket returns a bucket for models. The name must be unique in
// the application and is used as the key prefix.
func NewModelBucket(name string, opts ...ModelBucketOption) *ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	b := &ModelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		indexes: make(map[string]index),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Name returns the bucket name.
func (b *ModelBucket) Name() string {
	return b.name
}

// DBKey returns the key under which a record is stored in the database.
func (b *ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One loads the record stored under key into dest. Returns
// errors.ErrNotFound if there is no such record.
func (b *ModelBucket) One(db peerfund.ReadOnlyKVStore, key []byte, dest Model) error {
	dbkey := b.DBKey(key)
	raw, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		// A model with all fields zero serializes to an empty value,
		// which some stores return as nil.
		ok, err := db.Has(dbkey)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "%s %q", b.name, key)
		}
	}
	return load(raw, dest)
}

// Has returns true if a record is stored under key.
func (b *ModelBucket) Has(db peerfund.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Create stores a new record. Returns errors.ErrDuplicate if a record
// with the same key exists already.
func (b *ModelBucket) Create(db peerfund.KVStore, key []byte, m Model) error {
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "%s %q", b.name, key)
	}
	return b.Put(db, key, m)
}

// Put validates and stores the record under key, overwriting any
// previous value. Indexes are updated.
func (b *ModelBucket) Put(db peerfund.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "%T: %s", m, err)
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot marshal %T: %s", m, err)
	}
	if len(b.indexes) > 0 {
		if err := b.updateIndexes(db, key, m); err != nil {
			return err
		}
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// PrefixScan iterates over all records whose key starts with prefix. A
// nil prefix scans the whole bucket.
func (b *ModelBucket) PrefixScan(db peerfund.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	it, err := scan(db, b.DBKey(prefix), reverse)
	if err != nil {
		return nil, err
	}
	return &primaryIterator{it: it, prefix: b.prefix}, nil
}

// IndexScan iterates over all records having given value in the named
// index, ordered by primary key.
func (b *ModelBucket) IndexScan(db peerfund.ReadOnlyKVStore, indexName string, value []byte, reverse bool) (ModelIterator, error) {
	idx, ok := b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no index %q in %s", indexName, b.name)
	}
	prefix := idx.valuePrefix(value)
	it, err := scan(db, prefix, reverse)
	if err != nil {
		return nil, err
	}
	return &indexIterator{it: it, db: db, bucket: b, prefix: prefix}, nil
}

func scan(db peerfund.ReadOnlyKVStore, prefix []byte, reverse bool) (peerfund.Iterator, error) {
	var (
		it  peerfund.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(prefix, prefixEnd(prefix))
	} else {
		it, err = db.Iterator(prefix, prefixEnd(prefix))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return it, nil
}

// updateIndexes replaces the index entries of the previous version of the
// record, if any, with the entries of m.
func (b *ModelBucket) updateIndexes(db peerfund.KVStore, key []byte, m Model) error {
	var prev Model
	if raw, err := db.Get(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	} else if raw != nil {
		// Same concrete type as m, unmarshal into a fresh copy.
		prev = cloneEmpty(m)
		if err := load(raw, prev); err != nil {
			return err
		}
	}

	for _, idx := range b.indexes {
		value, err := idx.fn(m)
		if err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
		var prevValue []byte
		if prev != nil {
			if prevValue, err = idx.fn(prev); err != nil {
				return errors.Wrapf(err, "index %s", idx.name)
			}
		}
		if prev != nil && bytes.Equal(value, prevValue) {
			continue
		}
		if prevValue != nil {
			if err := db.Delete(idx.entry(prevValue, key)); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}
		}
		if value == nil {
			continue
		}
		if idx.unique {
			it, err := scan(db, idx.valuePrefix(value), false)
			if err != nil {
				return err
			}
			taken := it.Valid()
			it.Close()
			if taken {
				return errors.Wrapf(errors.ErrDuplicate, "index %s", idx.name)
			}
		}
		if err := db.Set(idx.entry(value, key), []byte{}); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// valuePrefix is the common prefix of all entries for given value. The
// value length is encoded so that values being a prefix of one another
// do not mix.
func (i index) valuePrefix(value []byte) []byte {
	res := make([]byte, 0, len(i.prefix)+2+len(value))
	res = append(res, i.prefix...)
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(value)))
	res = append(res, l[:]...)
	return append(res, value...)
}

func (i index) entry(value, key []byte) []byte {
	return append(i.valuePrefix(value), key...)
}

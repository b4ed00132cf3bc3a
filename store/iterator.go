package store

import "bytes"

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIterator joins a snapshot of cached items with the iterator of the
// parent store, taking overwrites and deletes into account.
type cacheIterator struct {
	items   []keyer
	idx     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid returns true iff it can be read.
func (i *cacheIterator) Valid() bool {
	return i.ownValid() || i.parentValid()
}

// Next moves the iterator to the next key, as defined by the order of
// iteration. Panics when not valid.
func (i *cacheIterator) Next() error {
	switch i.first() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIterator) Key() []byte {
	switch i.first() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *cacheIterator) Value() []byte {
	switch i.first() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *cacheIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipDeleted advances over all cached deletes, together with the parent
// entries they hide.
func (i *cacheIterator) skipDeleted() error {
	for {
		src := i.first()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(deletedItem); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// first selects the iterator holding the next key in iteration order.
func (i *cacheIterator) first() source {
	switch own, par := i.ownValid(), i.parentValid(); {
	case !own && !par:
		return none
	case !par:
		return us
	case !own:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *cacheIterator) ownValid() bool {
	return i.idx < len(i.items)
}

func (i *cacheIterator) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}

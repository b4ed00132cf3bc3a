package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memStoreConstructor).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).CacheConflicts(t)
}

func TestBTreeCacheIterator(t *testing.T) {
	s := NewTestSuite(memStoreConstructor)
	s.FuzzIterator(t)
	s.IteratorWithConflicts(t)
}

func TestNestedCacheWrap(t *testing.T) {
	Convey("Given a store with a pool balance", t, func() {
		base := MemStore()
		So(base.Set([]byte("pool"), []byte("1000")), ShouldBeNil)

		Convey("a nested cache sees the outer writes", func() {
			outer := base.CacheWrap()
			So(outer.Set([]byte("pool"), []byte("400")), ShouldBeNil)
			inner := outer.CacheWrap()
			val, err := inner.Get([]byte("pool"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "400")

			Convey("discarding the inner cache keeps the outer one", func() {
				So(inner.Set([]byte("funded"), []byte("P1")), ShouldBeNil)
				inner.Discard()
				has, err := outer.Has([]byte("funded"))
				So(err, ShouldBeNil)
				So(has, ShouldBeFalse)
			})

			Convey("writing both reaches the base", func() {
				So(inner.Set([]byte("funded"), []byte("P1")), ShouldBeNil)
				So(inner.Write(), ShouldBeNil)
				So(outer.Write(), ShouldBeNil)
				val, err := base.Get([]byte("funded"))
				So(err, ShouldBeNil)
				So(string(val), ShouldEqual, "P1")
				val, err = base.Get([]byte("pool"))
				So(err, ShouldBeNil)
				So(string(val), ShouldEqual, "400")
			})
		})
	})
}

func TestSliceIterator(t *testing.T) {
	models := []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2"))}
	iter := NewSliceIterator(models)
	assertIterator(t, models, iter)
	assert.Panics(t, func() { iter.Key() })
}

func TestRecordingStore(t *testing.T) {
	rec := NewRecordingStore(MemStore())

	cache := rec.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("b")))
	assert.Empty(t, rec.KVPairs())

	require.NoError(t, cache.Write())
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": nil}, rec.KVPairs())

	discarded := rec.CacheWrap()
	require.NoError(t, discarded.Set([]byte("c"), []byte("3")))
	discarded.Discard()
	assert.Len(t, rec.KVPairs(), 2)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := NewNonAtomicBatch(base)
	require.NoError(t, batch.Set([]byte("a"), []byte("1")))
	require.NoError(t, batch.Delete([]byte("a")))
	require.NoError(t, batch.Set([]byte("b"), []byte("2")))
	assert.Len(t, batch.ShowOps(), 3)

	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())
	assert.Empty(t, batch.ShowOps())
	has, err = base.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
	val, err := base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

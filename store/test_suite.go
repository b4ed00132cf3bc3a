package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same behaviour checks against any CacheableKVStore.
// Packages providing a store implementation call its methods from their
// own tests, passing a constructor of the store under test.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store together with a function
// releasing its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores built by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes are visible in the cache that made them and
// reach the parent only after Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("pool"), []byte("1000")
	s.AssertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("proposal"), []byte("P1")
	require.NoError(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	s.AssertGetHas(t, base, k2, v2, true)

	k3, v3 := []byte("review"), []byte("80")
	discarded := base.CacheWrap()
	require.NoError(t, discarded.Set(k3, v3))
	require.NoError(t, discarded.Delete(k))
	discarded.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	deleting := base.CacheWrap()
	require.NoError(t, deleting.Delete(k))
	s.AssertGetHas(t, deleting, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	require.NoError(t, deleting.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks overwriting and deleting values of the parent
// within a cache.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is queried, Value is expected
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{DelOp(ks[4]), SetOp(ks[4], vs[5])},
			parentQueries: []Model{Pair(ks[4], vs[4])},
			childQueries:  []Model{Pair(ks[4], vs[5])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// FuzzIterator iterates over random data split between a parent and a
// cache, including deletes of keys that do not exist.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 50

	childSet := randModels(size, 8, 40)
	childOps := append(makeSetOps(childSet...), makeDelOps(randModels(20, 8, 1)...)...)
	own := sortModels(childSet)

	parentSet := randModels(size, 8, 40)
	parentOps := append(makeSetOps(parentSet...), makeDelOps(randModels(20, 8, 1)...)...)
	all := sortModels(append(parentSet, childSet...))

	cases := map[string]iterCase{
		"child with empty parent": {
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, own},
				{own[10].Key, nil, false, own[10:]},
				{nil, own[size-8].Key, false, own[:size-8]},
				{own[17].Key, own[28].Key, false, own[17:28]},
				{nil, nil, true, reverse(own)},
				{own[34].Key, nil, true, reverse(own[34:])},
				{nil, own[19].Key, true, reverse(own[:19])},
				{own[6].Key, own[26].Key, true, reverse(own[6:26])},
			},
		},
		"child and parent combined": {
			pre:   parentOps,
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, all},
				{all[10].Key, nil, false, all[10:]},
				{nil, all[size+8].Key, false, all[:size+8]},
				{all[17].Key, all[78].Key, false, all[17:78]},
				{nil, nil, true, reverse(all)},
				{all[34].Key, nil, true, reverse(all[34:])},
				{nil, all[69].Key, true, reverse(all[:69])},
				{all[6].Key, all[26].Key, true, reverse(all[6:26])},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// IteratorWithConflicts covers overwrites and deletes hiding parent data.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := sortModels(randModels(4, 20, 100))
	a, b, c, d := ms[0], ms[1], ms[2], ms[3]
	a2 := Pair(a.Key, []byte("a2"))
	b2 := Pair(b.Key, []byte("b2"))

	cases := map[string]iterCase{
		"iterate in child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, []Model{a, b, c}},
				{b.Key, c.Key, false, []Model{b}},
				{nil, nil, true, []Model{c, b, a}},
			},
		},
		"iterate over parent only": {
			pre: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, []Model{a, b, c}},
				{b.Key, c.Key, true, []Model{b}},
			},
		},
		"overwritten data shows child values": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{a2, b2, c, d}},
				{b.Key, d.Key, false, []Model{b2, c}},
				{nil, nil, true, []Model{d, c, b2, a2}},
			},
		},
		"deleted data is skipped": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// AssertGetHas checks both Get and Has return the expected state.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.NoError(t, err)
	assert.Equal(t, has, exists)
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (ic iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range ic.pre {
		require.NoError(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range ic.child {
		require.NoError(t, op.Apply(child))
	}

	for _, q := range ic.queries {
		var (
			iter Iterator
			err  error
		)
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		require.NoError(t, err)
		assertIterator(t, q.expected, iter)
	}
}

func assertIterator(t testing.TB, expected []Model, iter Iterator) {
	t.Helper()
	defer iter.Close()
	for i, want := range expected {
		require.True(t, iter.Valid(), "iterator ended at %d of %d", i, len(expected))
		if !bytes.Equal(want.Key, iter.Key()) {
			t.Fatalf("want key %d: %X\n got %X", i, want.Key, iter.Key())
		}
		assert.Equal(t, want.Value, iter.Value())
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}

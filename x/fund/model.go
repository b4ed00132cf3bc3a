package fund

import (
	"math/big"
	"sync/atomic"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
)

// Extension is the condition extension of the accounts owned by the fund.
// Transactions must not declare signers of this extension.
const Extension = "fund"

// PoolAddress owns the cash wallet holding the pool value.
var PoolAddress = peerfund.NewCondition(Extension, "pool", []byte("main")).Address()

var poolKey = []byte("main")

// Validate always succeeds, the balance is unsigned.
func (p *Pool) Validate() error {
	return nil
}

// NewPoolBucket returns the bucket holding the pool singleton.
func NewPoolBucket() *orm.ModelBucket {
	return orm.NewModelBucket("pool")
}

func loadPool(db peerfund.ReadOnlyKVStore, b *orm.ModelBucket) (*Pool, error) {
	var p Pool
	switch err := b.One(db, poolKey, &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return &Pool{}, nil
	default:
		return nil, errors.Wrap(err, "pool")
	}
}

func savePool(db peerfund.KVStore, b *orm.ModelBucket, p *Pool) error {
	return b.Put(db, poolKey, p)
}

// Balance returns the value available for allocation.
func Balance(db peerfund.ReadOnlyKVStore) (uint64, error) {
	p, err := loadPool(db, NewPoolBucket())
	if err != nil {
		return 0, err
	}
	return p.Balance, nil
}

// MinAverageScore is the lowest average review score that is funded.
const MinAverageScore = 75

var (
	scale      = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	minAverage = new(big.Int).Mul(big.NewInt(MinAverageScore), scale)
)

// MeetsThreshold returns true if the average score, computed with 18
// decimals, is at least MinAverageScore.
func MeetsThreshold(scoreSum, reviewCount uint64) bool {
	if reviewCount == 0 {
		return false
	}
	avg := new(big.Int).SetUint64(scoreSum)
	avg.Mul(avg, scale)
	avg.Quo(avg, new(big.Int).SetUint64(reviewCount))
	return avg.Cmp(minAverage) >= 0
}

// Guard is a non reentrant lock. It does not block, a second Acquire
// fails until Release is called.
type Guard struct {
	held int32
}

// Acquire takes the guard. Returns false if it is already held.
func (g *Guard) Acquire() bool {
	return atomic.CompareAndSwapInt32(&g.held, 0, 1)
}

// Release frees the guard.
func (g *Guard) Release() {
	atomic.StoreInt32(&g.held, 0)
}

// Held returns true while the guard is taken.
func (g *Guard) Held() bool {
	return atomic.LoadInt32(&g.held) == 1
}

package cash

import (
	"sync"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
)

// Receiver is notified when an address it was registered for is credited.
// Returning an error aborts the transfer.
type Receiver interface {
	OnReceive(ctx peerfund.Context, db peerfund.KVStore, from peerfund.Address, amount uint64) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx peerfund.Context, db peerfund.KVStore, from peerfund.Address, amount uint64) error

// OnReceive calls fn.
func (fn ReceiverFunc) OnReceive(ctx peerfund.Context, db peerfund.KVStore, from peerfund.Address, amount uint64) error {
	return fn(ctx, db, from, amount)
}

// Controller is the only way to change wallet balances.
type Controller struct {
	bucket *orm.ModelBucket

	mu        sync.RWMutex
	receivers map[string]Receiver
	custody   map[string]bool
}

// NewController returns a controller using the wallet bucket.
func NewController() *Controller {
	return &Controller{
		bucket:    NewWalletBucket(),
		receivers: make(map[string]Receiver),
		custody:   make(map[string]bool),
	}
}

// RegisterReceiver installs r for addr, replacing any previous receiver.
// A nil receiver removes the registration.
func (c *Controller) RegisterReceiver(addr peerfund.Address, r Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r == nil {
		delete(c.receivers, string(addr))
		return
	}
	c.receivers[string(addr)] = r
}

// RegisterCustody marks addr as a wallet held by an extension. Such a
// wallet is moved only by its extension and never by cash/send.
func (c *Controller) RegisterCustody(addr peerfund.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.custody[string(addr)] = true
}

// IsCustody returns true if addr was registered with RegisterCustody.
func (c *Controller) IsCustody(addr peerfund.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.custody[string(addr)]
}

func (c *Controller) receiver(addr peerfund.Address) Receiver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.receivers[string(addr)]
}

// Balance returns the balance of given address. An address that never
// received anything has a zero balance.
func (c *Controller) Balance(db peerfund.ReadOnlyKVStore, addr peerfund.Address) (uint64, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (c *Controller) wallet(db peerfund.ReadOnlyKVStore, addr peerfund.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
}

// MoveCoins moves amount from src to dest. When dest has a receiver
// registered, it is called after both balances are written.
func (c *Controller) MoveCoins(ctx peerfund.Context, db peerfund.KVStore, src, dest peerfund.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", sender.Balance, amount)
	}
	sender.Balance -= amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Reading the recipient after the sender is written makes moving
	// to self a noop.
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	recipient.Balance += amount
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}

	if r := c.receiver(dest); r != nil {
		if err := r.OnReceive(ctx, db, src, amount); err != nil {
			return errors.Wrap(err, "receiver")
		}
	}
	return nil
}

// IssueCoins credits dest with amount. Receivers are not called.
func (c *Controller) IssueCoins(db peerfund.KVStore, dest peerfund.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Balance+amount < w.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	w.Balance += amount
	return c.bucket.Put(db, dest, w)
}

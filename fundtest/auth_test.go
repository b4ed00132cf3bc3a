package fundtest

import (
	"context"
	"testing"

	"github.com/iov-one/peerfund"
)

func TestNewCondition(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := NewCondition()
		if err := c.Validate(); err != nil {
			t.Fatalf("invalid condition %s: %s", c, err)
		}
		if err := c.Address().Validate(); err != nil {
			t.Fatalf("invalid address of %s: %s", c, err)
		}
		if seen[string(c)] {
			t.Fatalf("duplicated condition: %s", c)
		}
		seen[string(c)] = true
	}
}

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	auth := &Auth{Signer: a, Signers: []peerfund.Condition{b}}
	ctx := context.Background()

	if got := auth.GetConditions(ctx); len(got) != 2 || !got[0].Equals(a) || !got[1].Equals(b) {
		t.Fatalf("unexpected conditions: %v", got)
	}
	if !auth.HasAddress(ctx, a.Address()) || !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("signer address not found")
	}
	if auth.HasAddress(ctx, c.Address()) {
		t.Fatal("unexpected address")
	}
}

package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create()
	assert.Equal(t, 1, r.Len())

	err := r.With(id, func(d *Draft) error {
		fill(t, d, "1", "Audit", "1", "100", "18")
		return d.SelectCustomer(9)
	})
	require.NoError(t, err)

	var accepted []models.Invoice
	inv, err := r.Finalize(context.Background(), id, testFinalizer(), func(_ context.Context, inv models.Invoice) error {
		accepted = append(accepted, inv)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assertDec(t, "118", inv.Total, "Total")
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, r.With(id, func(*Draft) error { return nil }), ErrDraftNotFound)
}

func TestRegistry_FinalizeNotReadyKeepsDraft(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create()
	_, err := r.Finalize(context.Background(), id, testFinalizer(), nil)
	assert.ErrorIs(t, err, ErrCustomerRequired)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Discard(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create()
	assert.True(t, r.Discard(id))
	assert.False(t, r.Discard(id))
	assert.ErrorIs(t, r.With(id, func(*Draft) error { return nil }), ErrDraftNotFound)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestRegistry_SweepIdleDrafts(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry(&seqIDs{}, WithIdleTTL(time.Hour), WithClock(clock.Now))
	abandoned := r.Create()
	active := r.Create()

	clock.Advance(45 * time.Minute)
	require.NoError(t, r.With(active, func(d *Draft) error { return d.SelectCustomer(9) }))
	assert.Equal(t, 0, r.Sweep())

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, r.With(abandoned, func(*Draft) error { return nil }), ErrDraftNotFound)
	require.NoError(t, r.With(active, func(*Draft) error { return nil }))

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepSkipsDraftInUse(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry(&seqIDs{}, WithIdleTTL(time.Minute), WithClock(clock.Now))
	id := r.Create()
	err := r.With(id, func(d *Draft) error {
		clock.Advance(time.Hour)
		assert.Equal(t, 0, r.Sweep())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NoTTLKeepsDrafts(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry(&seqIDs{}, WithClock(clock.Now))
	r.Create()
	clock.Advance(365 * 24 * time.Hour)
	assert.Equal(t, 0, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ConcurrentAdds(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With(id, func(d *Draft) error {
				_, err := d.AddItem()
				return err
			})
		}()
	}
	wg.Wait()
	_ = r.With(id, func(d *Draft) error {
		items := d.Items()
		assert.Len(t, items, 51)
		seen := map[string]bool{}
		for _, it := range items {
			assert.False(t, seen[it.ID])
			seen[it.ID] = true
		}
		return nil
	})
}

func TestSnowflakeIDs_Unique(t *testing.T) {
	ids, err := NewSnowflakeIDs(1)
	require.NoError(t, err)
	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := ids.NextID()
		require.False(t, seen[id])
		seen[id] = true
	}
	_, err = NewSnowflakeIDs(4096)
	assert.Error(t, err)
}

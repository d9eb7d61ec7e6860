package cache

import (
	"testing"
	"time"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleSnapshot(expenses int64) *entity.BudgetSnapshot {
	snap := entity.DefaultSnapshot()
	snap.TotalExpenses = decimal.NewFromInt(expenses)
	return &snap
}

func TestSnapshotCache(t *testing.T) {
	t.Run("Get returns nil on a miss", func(t *testing.T) {
		c := NewSnapshotCache()
		assert.Nil(t, c.Get("u1"))
	})

	t.Run("Put then Get", func(t *testing.T) {
		c := NewSnapshotCache()
		c.Put("u1", sampleSnapshot(1200))

		got := c.Get("u1")
		assert.NotNil(t, got)
		assert.Equal(t, "1200", got.TotalExpenses.String())
		assert.Equal(t, 1, c.Size())
	})

	t.Run("Entries are per user", func(t *testing.T) {
		c := NewSnapshotCache()
		c.Put("u1", sampleSnapshot(100))
		c.Put("u2", sampleSnapshot(200))

		assert.Equal(t, "100", c.Get("u1").TotalExpenses.String())
		assert.Equal(t, "200", c.Get("u2").TotalExpenses.String())
	})

	t.Run("Put overwrites", func(t *testing.T) {
		c := NewSnapshotCache()
		c.Put("u1", sampleSnapshot(100))
		c.Put("u1", sampleSnapshot(900))

		assert.Equal(t, "900", c.Get("u1").TotalExpenses.String())
		assert.Equal(t, 1, c.Size())
	})

	t.Run("Expired entries are not served", func(t *testing.T) {
		c := NewSnapshotCache()
		c.SetExpiration(10 * time.Millisecond)
		c.Put("u1", sampleSnapshot(100))

		time.Sleep(20 * time.Millisecond)

		assert.Nil(t, c.Get("u1"))
	})

	t.Run("Invalidate drops a single entry", func(t *testing.T) {
		c := NewSnapshotCache()
		c.Put("u1", sampleSnapshot(100))
		c.Put("u2", sampleSnapshot(200))

		c.Invalidate("u1")

		assert.Nil(t, c.Get("u1"))
		assert.NotNil(t, c.Get("u2"))
	})

	t.Run("Clear drops everything", func(t *testing.T) {
		c := NewSnapshotCache()
		c.Put("u1", sampleSnapshot(100))
		c.Put("u2", sampleSnapshot(200))

		c.Clear()

		assert.Equal(t, 0, c.Size())
	})

	t.Run("CleanExpired removes only stale entries", func(t *testing.T) {
		c := NewSnapshotCache()
		c.SetExpiration(10 * time.Millisecond)
		c.Put("u1", sampleSnapshot(100))

		time.Sleep(20 * time.Millisecond)

		c.SetExpiration(time.Hour)
		c.Put("u2", sampleSnapshot(200))

		c.SetExpiration(10 * time.Millisecond)
		removed := c.CleanExpired()

		assert.Equal(t, 1, removed)
		assert.Equal(t, 1, c.Size())
	})
}

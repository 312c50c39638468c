package enrichment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

func TestOutcomeCache_SetGet(t *testing.T) {
	t.Parallel()

	c := newOutcomeCache(4, time.Minute)
	want := domain.NewNotFound("not_a_known_word", nil)

	c.Set("xyzgh", want)

	got, ok := c.Get("xyzgh")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = c.Get("other")
	assert.False(t, ok)
}

func TestOutcomeCache_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := newOutcomeCache(4, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("xyzgh", domain.NewNotFound("not_a_known_word", nil))

	_, ok := c.Get("xyzgh")
	require.True(t, ok)

	now = now.Add(time.Minute + time.Second)

	_, ok = c.Get("xyzgh")
	assert.False(t, ok, "entries past their TTL must not be served")

	c.mu.Lock()
	_, stillStored := c.entries["xyzgh"]
	c.mu.Unlock()
	assert.False(t, stillStored, "expired entries are dropped on read")
}

func TestOutcomeCache_EvictsClosestToExpiryWhenFull(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := newOutcomeCache(2, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", domain.NewNotFound("a", nil))
	now = now.Add(time.Second)
	c.Set("b", domain.NewNotFound("b", nil))
	now = now.Add(time.Second)
	c.Set("c", domain.NewNotFound("c", nil))

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry is evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestOutcomeCache_OverwriteDoesNotEvict(t *testing.T) {
	t.Parallel()

	c := newOutcomeCache(2, time.Minute)

	c.Set("a", domain.NewNotFound("a", nil))
	c.Set("b", domain.NewNotFound("b", nil))
	c.Set("a", domain.NewRejected("a2", nil))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeRejected, got.Kind)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestOutcomeCache_BoundedSize(t *testing.T) {
	t.Parallel()

	c := newOutcomeCache(8, time.Minute)
	for i := range 100 {
		c.Set(fmt.Sprintf("k%d", i), domain.NewNotFound("x", nil))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.LessOrEqual(t, len(c.entries), 8)
}

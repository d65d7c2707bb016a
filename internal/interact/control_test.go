package interact

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type recordingInvalidator struct {
	keys     []string
	prefixes []string
}

func (i *recordingInvalidator) Invalidate(key string) {
	i.keys = append(i.keys, key)
}

func (i *recordingInvalidator) InvalidatePrefix(prefix string) {
	i.prefixes = append(i.prefixes, prefix)
}

func succeed(ctx context.Context) error { return nil }

func fail(ctx context.Context) error { return fmt.Errorf("write rejected") }

func TestControlOptimisticValueVisibleDuringWrite(t *testing.T) {
	c := NewControl(false, nil, nil)

	var seen bool
	var state State
	err := c.Do(context.Background(), true, func(ctx context.Context) error {
		seen = c.Value()
		state = c.State()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, seen, "the flipped value must be visible while the write is in flight")
	assert.Equal(t, Pending, state)
	assert.Equal(t, Settled, c.State())
	assert.True(t, c.Value())
}

func TestControlRevertsOnFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	c := NewControl(false, notifier, nil)

	err := c.Do(context.Background(), true, fail)
	require.Error(t, err)
	assert.False(t, c.Value(), "a failed write reverts to the prior confirmed value")
	assert.Equal(t, Settled, c.State())
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "That didn't go through. Try again?", notifier.messages[0])
}

func TestControlInvalidatesOnSuccessOnly(t *testing.T) {
	invalidator := &recordingInvalidator{}
	c := NewControl(false, nil, invalidator)
	c.OnSuccess([]string{"post:1"}, []string{"feed:"})

	require.Error(t, c.Do(context.Background(), true, fail))
	assert.Empty(t, invalidator.keys, "a failed write must not invalidate")
	assert.Empty(t, invalidator.prefixes)

	require.NoError(t, c.Do(context.Background(), true, succeed))
	assert.Equal(t, []string{"post:1"}, invalidator.keys)
	assert.Equal(t, []string{"feed:"}, invalidator.prefixes)
}

func TestControlDoubleToggle(t *testing.T) {
	c := NewControl(false, nil, nil)
	ctx := context.Background()

	require.NoError(t, c.Do(ctx, NextToggle(c.Value()), succeed))
	assert.True(t, c.Value())

	require.NoError(t, c.Do(ctx, NextToggle(c.Value()), succeed))
	assert.False(t, c.Value(), "two toggles land back on the original state")
}

func TestControlFailureDuringOverlap(t *testing.T) {
	c := NewControl(false, nil, nil)
	ctx := context.Background()

	// The second toggle starts while the first is still pending; its
	// failure reverts to the value captured at its own start, not to the
	// value before the first toggle.
	err := c.Do(ctx, true, func(context.Context) error {
		innerErr := c.Do(ctx, false, fail)
		assert.Error(t, innerErr)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, c.Value())
}

func TestControlOnSuccessDuringPendingWrite(t *testing.T) {
	invalidator := &recordingInvalidator{}
	c := NewControl(false, nil, invalidator)

	// Keys registered while the write is in flight are picked up when it
	// settles
	err := c.Do(context.Background(), true, func(context.Context) error {
		c.OnSuccess([]string{"post:9"}, []string{"feed:"})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post:9"}, invalidator.keys)
	assert.Equal(t, []string{"feed:"}, invalidator.prefixes)
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (i *countingInvalidator) Invalidate(string) {
	i.mu.Lock()
	i.calls++
	i.mu.Unlock()
}

func (i *countingInvalidator) InvalidatePrefix(string) {
	i.mu.Lock()
	i.calls++
	i.mu.Unlock()
}

func TestControlOnSuccessConcurrentWithWrites(t *testing.T) {
	invalidator := &countingInvalidator{}
	c := NewControl(false, nil, invalidator)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.OnSuccess([]string{"post:1", "post:2"}, []string{"feed:"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = c.Do(context.Background(), NextToggle(c.Value()), succeed)
		}
	}()
	wg.Wait()

	assert.Equal(t, Settled, c.State())
}

func TestNextToggle(t *testing.T) {
	assert.True(t, NextToggle(false))
	assert.False(t, NextToggle(true))
}

func TestNextChoice(t *testing.T) {
	assert.Equal(t, "mood", NextChoice("", "mood"), "no current choice adopts the chosen one")
	assert.Equal(t, "real", NextChoice("mood", "real"), "a different choice replaces")
	assert.Equal(t, "", NextChoice("mood", "mood"), "re-choosing the current choice clears it")
}

package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := New[string]()
	var got []string
	b.Subscribe(func(v string) { got = append(got, "a:"+v) })
	b.Subscribe(func(v string) { got = append(got, "b:"+v) })

	b.Publish("bn")

	assert.Equal(t, []string{"a:bn", "b:bn"}, got)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New[int]()
	calls := 0
	cancel := b.Subscribe(func(int) { calls++ })
	require.Equal(t, 1, b.Len())

	b.Publish(1)
	cancel()
	cancel()
	b.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Len())
}

func TestHandlerCanCancelLaterSubscriber(t *testing.T) {
	b := New[int]()
	var cancelSecond func()
	secondCalls := 0
	b.Subscribe(func(int) { cancelSecond() })
	cancelSecond = b.Subscribe(func(int) { secondCalls++ })

	b.Publish(1)

	assert.Zero(t, secondCalls)
	assert.Equal(t, 1, b.Len())
}

func TestNilHandlerIgnored(t *testing.T) {
	b := New[int]()
	cancel := b.Subscribe(nil)
	cancel()
	assert.Zero(t, b.Len())
}

package bus

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	b := New(slog.Default())
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		b.Subscribe(TopicRecordCreated, func(Event) { order = append(order, i) })
	}

	b.Publish(Event{Topic: TopicRecordCreated, Resource: "patients", ID: 1})
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestPublish_TopicIsolation(t *testing.T) {
	b := New(nil)
	var got []Event
	b.Subscribe(TopicRecordDeleted, func(ev Event) { got = append(got, ev) })

	b.Publish(Event{Topic: TopicRecordCreated, Resource: "units", ID: 1})
	b.Publish(Event{Topic: TopicRecordDeleted, Resource: "units", ID: 2})
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)
}

func TestUnsubscribe_StopsDeliveryAndIsIdempotent(t *testing.T) {
	b := New(nil)
	calls := 0
	cancel := b.Subscribe(TopicRecordUpdated, func(Event) { calls++ })

	b.Publish(Event{Topic: TopicRecordUpdated})
	cancel()
	cancel()
	b.Publish(Event{Topic: TopicRecordUpdated})
	require.Equal(t, 1, calls)
}

func TestPublish_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	b := New(slog.Default())
	var after bool
	b.Subscribe(TopicRecordCreated, func(Event) { panic("boom") })
	b.Subscribe(TopicRecordCreated, func(Event) { after = true })

	require.NotPanics(t, func() {
		b.Publish(Event{Topic: TopicRecordCreated, Resource: "invoices", ID: 7})
	})
	require.True(t, after)
}

func TestPublish_ConcurrentSafe(t *testing.T) {
	b := New(nil)
	var mu sync.Mutex
	count := 0
	b.Subscribe(TopicRecordCreated, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(Event{Topic: TopicRecordCreated})
		}()
	}
	wg.Wait()
	require.Equal(t, 20, count)
}

// ABOUTME: Tests for the typed event bus
// ABOUTME: Covers ordered delivery, unsubscribe, panic isolation, and concurrent publish

package eventbus

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	var got []string
	for _, name := range []string{"first", "second", "third"} {
		bus.Subscribe(func(s string) { got = append(got, name+":"+s) })
	}

	bus.Publish("turn")

	want := []string{"first:turn", "second:turn", "third:turn"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var got []int
	unsubA := bus.Subscribe(func(n int) { got = append(got, n) })
	bus.Subscribe(func(n int) { got = append(got, n*10) })

	unsubA()
	unsubA()
	bus.Publish(2)

	if diff := cmp.Diff([]int{20}, got); diff != "" {
		t.Errorf("after unsubscribe (-want +got):\n%s", diff)
	}
	if bus.Count() != 1 {
		t.Errorf("Count() = %d, want 1", bus.Count())
	}
}

func TestBus_PanicIsolated(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	var recovered []error
	bus.OnPanic(func(err error) { recovered = append(recovered, err) })

	reached := false
	bus.Subscribe(func(string) { panic("observer bug") })
	bus.Subscribe(func(string) { reached = true })

	bus.Publish("x")

	if !reached {
		t.Error("handler after a panicking handler was not called")
	}
	if len(recovered) != 1 {
		t.Fatalf("recovered %d panics; want 1", len(recovered))
	}
	if recovered[0].Error() != "event handler panic: observer bug" {
		t.Errorf("recovered error = %q", recovered[0])
	}
}

func TestBus_PanicWithoutCallback(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	bus.Subscribe(func(int) { panic("boom") })
	bus.Publish(1)
}

func TestBus_NilPublish(t *testing.T) {
	t.Parallel()

	var bus *Bus[int]
	bus.Publish(1)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var mu sync.Mutex
	sum := 0
	bus.Subscribe(func(n int) {
		mu.Lock()
		sum += n
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(i)
			unsub := bus.Subscribe(func(int) {})
			unsub()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if sum != 1225 {
		t.Errorf("sum = %d, want 1225", sum)
	}
}

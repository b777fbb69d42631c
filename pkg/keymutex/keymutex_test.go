package keymutex

import (
	"sync"
	"testing"
)

func TestSerializesSameKey(t *testing.T) {
	km := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("round-1")
			counter++
			km.Unlock("round-1")
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Fatalf("counter = %d, want %d", counter, goroutines)
	}
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	km := New()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done
	km.Unlock("a")
}

func TestEntriesAreReleased(t *testing.T) {
	km := New()

	km.Lock("a")
	km.Unlock("a")
	km.Lock("b")
	km.Unlock("b")

	km.mu.Lock()
	n := len(km.entries)
	km.mu.Unlock()
	if n != 0 {
		t.Fatalf("%d lock entries leaked", n)
	}
}

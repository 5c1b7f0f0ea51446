package netlist

import (
	"strings"
	"sync"
	"testing"
)

func TestNewNetDistinct(t *testing.T) {
	for _, k := range []int{1, 2, 100, 10000} {
		seen := make(map[Net]bool, k)
		for range k {
			n := NewNet()
			if seen[n] {
				t.Fatalf("NewNet() repeated %q after fewer than %d calls", n, k)
			}
			seen[n] = true
		}
	}
}

func TestNetGeneratorPrefix(t *testing.T) {
	g := NewNetGenerator("bus")
	if got := g.Next(); got != "bus0" {
		t.Errorf("Next() = %q, want %q", got, "bus0")
	}
	if got := g.Next(); got != "bus1" {
		t.Errorf("Next() = %q, want %q", got, "bus1")
	}
	if !strings.HasPrefix(string(NewNet()), DefaultNetPrefix) {
		t.Errorf("NewNet() does not use prefix %q", DefaultNetPrefix)
	}
}

func TestNetGeneratorConcurrent(t *testing.T) {
	g := NewNetGenerator("n")
	const workers, per = 8, 500

	var mu sync.Mutex
	seen := make(map[Net]bool)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]Net, 0, per)
			for range per {
				local = append(local, g.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range local {
				seen[n] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("got %d distinct nets, want %d", len(seen), workers*per)
	}
}

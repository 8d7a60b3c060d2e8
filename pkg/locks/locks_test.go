package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryAcquireIsExclusivePerKey(t *testing.T) {
	k := NewKeyed()

	require.True(t, k.TryAcquire("inventory"))
	require.False(t, k.TryAcquire("inventory"))
	require.True(t, k.TryAcquire("distributor:7"), "other keys stay free")

	k.Release("inventory")
	require.True(t, k.TryAcquire("inventory"))
}

func TestReleaseUnheldKeyIsNoop(t *testing.T) {
	k := NewKeyed()
	k.Release("never-held")
	require.True(t, k.TryAcquire("never-held"))
}

func TestTryAcquireUnderContention(t *testing.T) {
	k := NewKeyed()

	var wg sync.WaitGroup
	wins := make(chan struct{}, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if k.TryAcquire("items") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var count int
	for range wins {
		count++
	}
	require.Equal(t, 1, count, "exactly one goroutine may hold the key")
}

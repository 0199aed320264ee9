package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInstanceIDUnique(t *testing.T) {
	seen := make(map[InstanceID]struct{})
	for i := 0; i < 1000; i++ {
		id := NewInstanceID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate instance ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestInstanceIDValid(t *testing.T) {
	assert.True(t, NewInstanceID().Valid())
	assert.False(t, InstanceID("launcher").Valid())
}

func TestInstanceIDShort(t *testing.T) {
	id := NewInstanceID()
	assert.Len(t, id.Short(), 8)
	assert.Equal(t, "abc", InstanceID("abc").Short())
}

func TestNewInstanceIDConcurrent(t *testing.T) {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[InstanceID]struct{})
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := NewInstanceID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

package rendezvous

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarrier_MarkReady(t *testing.T) {
	b := New(0, 3)
	assert.False(t, b.MarkReady(2))
	assert.False(t, b.MarkReady(2))
	assert.False(t, b.MarkReady(0))
	assert.False(t, b.Done())
	assert.Nil(t, b.ReadyAt())
	assert.Equal(t, 2, b.Count())

	assert.True(t, b.MarkReady(1))
	assert.True(t, b.Done())
	assert.NotNil(t, b.ReadyAt())
	assert.Equal(t, []int{2, 0, 1}, b.Arrivals())
	assert.False(t, b.MarkReady(1))
}

func TestBarrier_WaitReleasesOnQuorum(t *testing.T) {
	b := New(0, 4)
	released := make(chan struct{})
	go func() {
		_ = b.Wait(context.Background())
		close(released)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			b.MarkReady(id)
		}(i)
	}
	wg.Wait()

	select {
	case <-released:
		t.Fatal("leader released before quorum")
	case <-time.After(20 * time.Millisecond):
	}

	assert.True(t, b.MarkReady(3))
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("leader not released after quorum")
	}
}

func TestBarrier_WaitCancelled(t *testing.T) {
	b := New(0, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Wait(ctx), context.Canceled)
}

func TestStore(t *testing.T) {
	s := NewStore()
	b := s.Create(New(1, 1))
	assert.Same(t, b, s.Create(New(1, 5)))
	s.Create(New(2, 2))
	assert.Same(t, b, s.Get(1))

	b.MarkReady(0)
	visited := map[int]bool{}
	s.Iterate(func(groupID int, b *Barrier) {
		visited[groupID] = b.Done()
	})
	assert.Equal(t, map[int]bool{1: true, 2: false}, visited)
}

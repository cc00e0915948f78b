package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/printshare/service/messaging"
)

type TestPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	payload := TestPayload{ID: "test-1", Count: 1}

	require.NoError(t, queue.Offer(&payload))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())
	assert.NotEmpty(t, message.ID())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
}

func TestQueue_Offer(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 2})

	assert.NoError(t, queue.Offer(&TestPayload{ID: "a"}))
	assert.NoError(t, queue.Offer(&TestPayload{ID: "b"}))
	assert.ErrorIs(t, queue.Offer(&TestPayload{ID: "c"}), messaging.ErrQueueFull)
	assert.Equal(t, 2, queue.Size())
}

func TestQueue_TryConsume(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	_, ok := queue.TryConsume()
	assert.False(t, ok)

	require.NoError(t, queue.Offer(&TestPayload{ID: "a"}))
	message, ok := queue.TryConsume()
	require.True(t, ok)
	assert.Equal(t, "a", message.T().ID)
}

func TestQueue_Nack(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	queue := NewQueue[TestPayload](config)
	ctx := context.Background()

	require.NoError(t, queue.Offer(&TestPayload{ID: "retry"}))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	id := message.ID()
	require.NoError(t, message.Nack(errors.New("handler failed")))
	assert.Equal(t, 1, queue.Size())

	message, err = queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, message.ID(), "redelivery keeps the message id")
	err = message.Nack(errors.New("handler failed"))
	assert.ErrorIs(t, err, messaging.ErrDeadLettered)
	assert.Contains(t, err.Error(), "handler failed")
	assert.Equal(t, 0, queue.Size())
	assert.Error(t, message.Nack(nil))
	assert.NotErrorIs(t, message.Nack(nil), messaging.ErrDeadLettered)
}

func TestQueue_NackOnFullQueue(t *testing.T) {
	queue := NewQueue[TestPayload](Config{MaxRetries: 3, QueueBuffer: 1})
	require.NoError(t, queue.Offer(&TestPayload{ID: "a"}))
	message, ok := queue.TryConsume()
	require.True(t, ok)
	require.NoError(t, queue.Offer(&TestPayload{ID: "b"}))

	assert.ErrorIs(t, message.Nack(nil), messaging.ErrDeadLettered)
	assert.Equal(t, 1, queue.Size())
}

func TestQueue_Concurrency(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	const producers, perProducer = 10, 10

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				payload := TestPayload{ID: fmt.Sprintf("p%d-m%d", producerID, j), Count: j}
				assert.NoError(t, queue.Offer(&payload))
			}
		}(i)
	}

	consumed := make(chan int, 1)
	go func() {
		count := 0
		for count < producers*perProducer {
			message, err := queue.Consume(ctx)
			if err != nil {
				break
			}
			_ = message.Ack()
			count++
		}
		consumed <- count
	}()

	wg.Wait()
	select {
	case count := <-consumed:
		assert.Equal(t, producers*perProducer, count)
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}
}

func TestQueue_ContextCancellation(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(ctxWithTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, queue.Offer(&TestPayload{ID: "test"}))
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}

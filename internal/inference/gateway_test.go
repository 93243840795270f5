package inference

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roeev/docuchat/internal/entity"
)

type fakeEngine struct {
	mu       sync.Mutex
	inFlight int32
	maxSeen  int32
	delay    time.Duration
	response string
	err      error
}

func (f *fakeEngine) Complete(ctx context.Context, prompt string, params entity.GenerationParams) (string, error) {
	current := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if current > f.maxSeen {
		f.maxSeen = current
	}
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return f.response, f.err
}

func TestInfer_ReturnsEngineResponse(t *testing.T) {
	engine := &fakeEngine{response: "תשובה"}
	g := NewGateway(engine, time.Minute)

	got, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())

	require.NoError(t, err)
	assert.Equal(t, "תשובה", got)
}

func TestInfer_SerializesConcurrentCalls(t *testing.T) {
	engine := &fakeEngine{response: "ok", delay: 20 * time.Millisecond}
	g := NewGateway(engine, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Equal(t, int32(1), engine.maxSeen, "engine must never see concurrent calls")
}

func TestInfer_TimeoutReleasesQueue(t *testing.T) {
	engine := &fakeEngine{response: "late", delay: time.Second}
	g := NewGateway(engine, 20*time.Millisecond)

	start := time.Now()
	_, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())

	assert.ErrorIs(t, err, entity.ErrInference)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	// A following call must not be blocked by the timed-out one.
	engine.delay = 0
	got, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}

func TestInfer_EngineErrorWrapped(t *testing.T) {
	engine := &fakeEngine{err: assert.AnError}
	g := NewGateway(engine, time.Minute)

	_, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())

	assert.ErrorIs(t, err, entity.ErrInference)
}

func TestInfer_EmptyResponseIsFailure(t *testing.T) {
	for _, response := range []string{"", "   ", "\n\t"} {
		engine := &fakeEngine{response: response}
		g := NewGateway(engine, time.Minute)

		_, err := g.Infer(context.Background(), "prompt", entity.DefaultGenerationParams())

		assert.ErrorIs(t, err, entity.ErrInference)
		assert.Contains(t, err.Error(), entity.ErrEmptyResponse.Error())
	}
}

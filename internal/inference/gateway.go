// Package inference owns the single shared inference session. The
// underlying engine keeps one loaded model with one slot, so calls are
// serialized here: at most one inference executes at a time and
// concurrent requests queue on the gateway mutex.
package inference

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/entity"
	"go.uber.org/zap"
)

// Engine is one prompt-completion call against the loaded model.
type Engine interface {
	Complete(ctx context.Context, prompt string, params entity.GenerationParams) (string, error)
}

// Gateway guards the engine handle. Serialization is a correctness
// requirement: the session is a shared mutable resource and concurrent
// use of it is unsafe.
type Gateway struct {
	mu      sync.Mutex
	engine  Engine
	timeout time.Duration
}

func NewGateway(engine Engine, timeout time.Duration) *Gateway {
	return &Gateway{
		engine:  engine,
		timeout: timeout,
	}
}

// Infer runs one completion under the gateway lock. Each call is
// bounded by the configured timeout so a hung engine call releases the
// queue instead of blocking it forever. Engine failures come back as
// ErrInference; an empty completion is a failure, never a success.
func (g *Gateway) Infer(ctx context.Context, promptText string, params entity.GenerationParams) (string, error) {
	waitStart := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	if wait := time.Since(waitStart); wait > time.Second {
		ctxzap.Info(ctx, "inference call waited for session",
			zap.Duration("queue_wait", wait),
		)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	responseText, err := g.engine.Complete(callCtx, promptText, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInference, err)
	}

	if strings.TrimSpace(responseText) == "" {
		return "", fmt.Errorf("%w: %v", entity.ErrInference, entity.ErrEmptyResponse)
	}

	ctxzap.Info(ctx, "inference completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_length", len(promptText)),
		zap.Int("response_length", len(responseText)),
	)

	return responseText, nil
}

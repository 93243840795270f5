// Package llama talks to the llama.cpp server process that holds the
// loaded model. The server runs with a single slot; the inference
// gateway serializes access to it.
package llama

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/entity"
	pkghttp "github.com/roeev/docuchat/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.LlamaConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.LlamaConnectorConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
			pkghttp.WithClientKeepAlive(cfg.KeepAlive),
			pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAuthToken(cfg.Token),
		),
		logger: logger,
	}
}

// completionRequest is the llama.cpp server /completion body.
type completionRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	NPredict    int     `json:"n_predict"`
	TopP        float64 `json:"top_p"`
	Stream      bool    `json:"stream"`
	CachePrompt bool    `json:"cache_prompt"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Complete runs one prompt completion. Network-level failures are
// retried with the configured bounded policy; model-side errors are
// not, because a failed generation already consumed engine work.
func (c *Connector) Complete(ctx context.Context, prompt string, params entity.GenerationParams) (string, error) {
	ctxzap.Info(ctx, "requesting completion from llama server",
		zap.Int("prompt_length", len(prompt)),
		zap.Float64("temperature", params.Temperature),
		zap.Int("max_tokens", params.MaxTokens),
		zap.Float64("top_p", params.TopP),
	)

	req := completionRequest{
		Prompt:      prompt,
		Temperature: params.Temperature,
		NPredict:    params.MaxTokens,
		TopP:        params.TopP,
		Stream:      false,
		CachePrompt: true,
	}

	var resp completionResponse
	opts := append(
		c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isRetryable),
	)

	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionEndpoint, req, &resp)
	}, opts...)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "completion received", zap.Int("response_length", len(resp.Content)))

	return resp.Content, nil
}

func isRetryable(err error) bool {
	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}

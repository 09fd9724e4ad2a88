package llmclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"learnbyte/internal/config"
	"learnbyte/internal/domain"
	"learnbyte/internal/logger"

	"github.com/tmc/langchaingo/llms"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// OpenAIClient implements domain.GenerationClient against any
// OpenAI-compatible chat completion endpoint via LangchainGo. The
// upstream provider is interchangeable as long as it speaks the same
// wire format; the base URL comes from configuration.
type OpenAIClient struct {
	llm   llms.Model
	model string
	cfg   config.LLMConfig
}

// NewOpenAIClient builds the client. A missing API key is reported at
// call time as LLM_UNAVAILABLE rather than here, so the service can
// still boot and run on fallbacks alone.
func NewOpenAIClient(cfg config.LLMConfig) (*OpenAIClient, error) {
	c := &OpenAIClient{cfg: cfg, model: cfg.Model}
	if cfg.APIKey == "" {
		logger.Get().Warn("Generation client has no API key; all completions will degrade to fallbacks")
		return c, nil
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
		},
	}

	opts := []openaiLLM.Option{
		openaiLLM.WithToken(cfg.APIKey),
		openaiLLM.WithModel(cfg.Model),
		openaiLLM.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openaiLLM.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openaiLLM.New(opts...)
	if err != nil {
		return nil, domain.NewInternalError("failed to create completion client", err)
	}
	c.llm = llm
	return c, nil
}

// Complete issues a single chat completion. No retry logic lives here;
// callers own retry and fallback policy.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
	if c.llm == nil {
		return "", domain.NewServiceUnavailableError("generation service is not configured")
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := schema.ChatMessageTypeHuman
		if m.Role == domain.RoleSystem {
			role = schema.ChatMessageTypeSystem
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.llm.GenerateContent(callCtx, content,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		logger.Get().Error("Completion call failed",
			zap.String("model", c.model),
			zap.Error(err),
		)
		return "", classifyCallError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", domain.NewUpstreamError(errors.New("empty completion"))
	}
	return resp.Choices[0].Content, nil
}

// classifyCallError separates transport failures (timeouts, broken
// connections) from upstream service errors. The pipelines treat both
// the same way, but the distinction matters in logs.
func classifyCallError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &netErr) {
		return domain.NewTransportError(err)
	}
	return domain.NewUpstreamError(err)
}

var _ domain.GenerationClient = (*OpenAIClient)(nil)

package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ronin-hq/ronin/chat"
)

// rateLimitedLLM wraps an LLM handle with a token-bucket request limiter.
// Chat blocks until a token is available or the context is done.
type rateLimitedLLM struct {
	inner   LLM
	limiter *rate.Limiter
}

// withRateLimit wraps the handle with a requests-per-minute limit.
func withRateLimit(inner LLM, requestsPerMin int) LLM {
	r := rate.Limit(float64(requestsPerMin) / 60.0)
	return &rateLimitedLLM{
		inner:   inner,
		limiter: rate.NewLimiter(r, requestsPerMin),
	}
}

func (l *rateLimitedLLM) Provider() Provider { return l.inner.Provider() }

func (l *rateLimitedLLM) Backend() string { return l.inner.Backend() }

func (l *rateLimitedLLM) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", &InvocationError{Backend: l.inner.Backend(), Provider: l.inner.Provider(), Err: err}
	}
	return l.inner.Chat(ctx, messages)
}

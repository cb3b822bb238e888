// Package generate turns a project brief into a persisted batch of
// roadmap tasks: prompt the LLM, parse and normalize its proposals,
// resolve assignees, link dependencies and write the result to the store.
package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/RoadWing/internal/llm"
	"github.com/josephgoksu/RoadWing/internal/proposal"
	"github.com/josephgoksu/RoadWing/types"
)

const (
	// MaxGenerationRetries is the maximum number of attempts for a batch.
	MaxGenerationRetries = 3

	// RetryDelay is the delay between retries.
	RetryDelay = 500 * time.Millisecond
)

// Generator produces parsed task proposals from an LLM.
type Generator struct {
	cfg       llm.Config
	chatModel model.BaseChatModel
}

// NewGenerator creates a generator for the given provider configuration.
// The chat model is created lazily on first use.
func NewGenerator(cfg llm.Config) *Generator {
	return &Generator{cfg: cfg}
}

// newGeneratorWithModel injects a chat model directly (for testing).
func newGeneratorWithModel(m model.BaseChatModel) *Generator {
	return &Generator{chatModel: m}
}

// Proposals is the outcome of a successful generation attempt.
type Proposals struct {
	Tasks     []proposal.Proposal
	Insights  types.ProjectInsights
	RawOutput string
	Attempts  int
}

// Propose asks the model for a task breakdown and parses the response.
// A malformed response is fed back to the model for self-correction; after
// MaxGenerationRetries attempts the last error is returned and the whole
// batch fails.
func (g *Generator) Propose(ctx context.Context, req types.GenerationRequest) (*Proposals, error) {
	if g.chatModel == nil {
		m, err := llm.NewChatModel(ctx, g.cfg)
		if err != nil {
			return nil, fmt.Errorf("create chat model: %w", err)
		}
		g.chatModel = m
	}

	var lastErr error
	var feedback string

	for attempt := 1; attempt <= MaxGenerationRetries; attempt++ {
		prompt, err := buildPrompt(req, feedback)
		if err != nil {
			return nil, err
		}

		resp, err := g.chatModel.Generate(ctx, []*schema.Message{
			schema.UserMessage(prompt),
		})
		if err != nil {
			lastErr = fmt.Errorf("LLM generate: %w", err)
			if isTransientError(err) && attempt < MaxGenerationRetries {
				time.Sleep(RetryDelay * time.Duration(attempt))
				continue
			}
			return nil, lastErr
		}

		tasks, insights, err := proposal.Parse(resp.Content)
		if err != nil {
			lastErr = fmt.Errorf("parse response (attempt %d): %w", attempt, err)
			if types.IsMalformedResponse(err) && attempt < MaxGenerationRetries {
				feedback = formatErrorFeedback(err.Error(), resp.Content)
				time.Sleep(RetryDelay)
				continue
			}
			return nil, lastErr
		}

		return &Proposals{
			Tasks:     tasks,
			Insights:  insights,
			RawOutput: resp.Content,
			Attempts:  attempt,
		}, nil
	}

	return nil, fmt.Errorf("generation failed after %d attempts: %w", MaxGenerationRetries, lastErr)
}

// isTransientError checks if an error is transient and worth retrying.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())

	// Rate limits
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "quota exceeded") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "temporary") {
		return true
	}

	return false
}

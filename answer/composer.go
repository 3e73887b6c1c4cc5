package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/convertohq/converto/ai"
)

// noResponseNotice is returned when the model produced no completion.
const noResponseNotice = "The LLM did not return a response."

// Composer turns an assembled context and a question into a user-facing
// answer. Generation failures degrade to a chat message instead of
// propagating: the caller always gets displayable text.
type Composer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewComposer creates an answer composer.
func NewComposer(generator ai.Generator, opts ...Option) (*Composer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Composer{
		generator: generator,
		logger:    slog.Default().With("component", "answer"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Answer generates an answer to the query from the given context text.
// Failures are logged and degraded to an error message for the caller to
// display; this method never returns an error.
func (c *Composer) Answer(ctx context.Context, query, contextText string) string {
	user := fmt.Sprintf(userMessageTemplate, contextText, query)

	response, err := c.generator.Complete(ctx, SystemMessage, user)
	if err != nil {
		if errors.Is(err, ai.ErrNoCompletion) {
			c.logger.Warn("model returned no completion")
			return noResponseNotice
		}
		c.logger.Error("answer generation failed", "err", err)
		return fmt.Sprintf("An error occurred while generating the answer: %s", err)
	}

	return response
}

// SummarizeLesson generates a summary of a full lesson's content. Like
// Answer, failures degrade to displayable text.
func (c *Composer) SummarizeLesson(ctx context.Context, content string) string {
	return c.Answer(ctx, LessonSummaryPrompt, content)
}

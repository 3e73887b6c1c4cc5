package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/convertohq/converto/ai"
	"github.com/convertohq/converto/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComposerRequiresGenerator(t *testing.T) {
	_, err := NewComposer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestAnswerBuildsTwoMessagePrompt(t *testing.T) {
	generator := mock.NewMockGenerator()
	var gotSystem, gotUser string
	generator.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		gotSystem = system
		gotUser = user
		return "Run more A/B tests.", nil
	}

	composer, err := NewComposer(generator)
	require.NoError(t, err)

	answer := composer.Answer(context.Background(), "How do I improve conversions?", "Context block here.")
	assert.Equal(t, "Run more A/B tests.", answer)
	assert.Equal(t, SystemMessage, gotSystem)
	assert.Equal(t, "Context block here.\n\nQuestion: How do I improve conversions?\n\nAnswer:", gotUser)
}

func TestAnswerDegradesGenerationFailure(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("model overloaded")
	}

	composer, err := NewComposer(generator)
	require.NoError(t, err)

	answer := composer.Answer(context.Background(), "question", "context")
	assert.Equal(t, "An error occurred while generating the answer: model overloaded", answer)
}

func TestAnswerNoCompletion(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", ai.ErrNoCompletion
	}

	composer, err := NewComposer(generator)
	require.NoError(t, err)

	answer := composer.Answer(context.Background(), "question", "context")
	assert.Equal(t, "The LLM did not return a response.", answer)
}

func TestSummarizeLessonUsesSummaryPrompt(t *testing.T) {
	generator := mock.NewMockGenerator()
	var gotUser string
	generator.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		gotUser = user
		return "- point one", nil
	}

	composer, err := NewComposer(generator)
	require.NoError(t, err)

	summary := composer.SummarizeLesson(context.Background(), "Full lesson text.")
	assert.Equal(t, "- point one", summary)
	assert.Contains(t, gotUser, "Full lesson text.")
	assert.Contains(t, gotUser, "Question: "+LessonSummaryPrompt)
}

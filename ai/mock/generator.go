package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, a canned answer is returned.
	CompleteFunc func(ctx context.Context, system, user string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Complete returns a canned answer, or delegates to CompleteFunc if set.
func (m *MockGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}

	return "mock answer", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}

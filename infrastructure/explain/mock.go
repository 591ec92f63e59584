package explain

import (
	"context"
	"sync"
)

// MockChatModel is a test double that returns canned responses and
// records the requests it receives.
type MockChatModel struct {
	// Response is returned from DoRequest when Err is nil.
	Response string

	// Err, when set, is returned from every DoRequest call.
	Err error

	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastOpts   map[string]any
}

// Model returns a fixed identifier.
func (m *MockChatModel) Model() string { return "mock" }

// DoRequest records the request and returns the canned response.
func (m *MockChatModel) DoRequest(_ context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts

	if m.Err != nil {
		return "", 0, 0, m.Err
	}
	return m.Response, len(prompt) / 4, len(m.Response) / 4, nil
}

// Calls returns how many requests the mock has received.
func (m *MockChatModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent request.
func (m *MockChatModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastOpts returns the options of the most recent request.
func (m *MockChatModel) LastOpts() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOpts
}

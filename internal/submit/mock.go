package submit

import (
	"context"
	"sync"

	"github.com/abhisek/checkform/internal/form"
)

// MockResponse is a canned reply for the MockClient.
type MockResponse struct {
	Result *Result
	Err    error
}

// MockClient is a deterministic Client for testing.
// It returns canned responses in FIFO order and records all calls.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Records   []form.AnswerRecord
	Names     []string
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a MockClient with the given canned responses.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

func (m *MockClient) Submit(_ context.Context, r form.AnswerRecord) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, r.Clone())
	return m.next()
}

func (m *MockClient) CheckName(_ context.Context, name string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Names = append(m.Names, name)
	return m.next()
}

// next pops the next canned response. An empty queue behaves like an
// unreachable server.
func (m *MockClient) next() (*Result, error) {
	if len(m.responses) == 0 {
		return nil, &ErrTransport{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Result, resp.Err
}

// AddResponse appends a canned response to the queue.
func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records) + len(m.Names)
}

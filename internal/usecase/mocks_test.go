package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetChatByID(ctx context.Context, chatID string) (Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Chat), args.Error(1)
}

func (m *MockClient) Close() {
	m.Called()
}

type MockChat struct {
	mock.Mock
}

func (m *MockChat) SendText(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockChat) SendMedia(ctx context.Context, media *entity.Media, caption string) error {
	args := m.Called(ctx, media, caption)
	return args.Error(0)
}

type MockMediaLoader struct {
	mock.Mock
}

func (m *MockMediaLoader) FromFilePath(path string) (*entity.Media, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, job entity.OutboundJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// staticProvider devolve sempre o mesmo handle (pode ser nil).
type staticProvider struct {
	client Client
}

func (p staticProvider) Client() Client {
	return p.client
}

// recordingDispatcher guarda os jobs sem executá-los.
type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []entity.OutboundJob
}

func (d *recordingDispatcher) Dispatch(_ context.Context, job entity.OutboundJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordSend(kind, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[kind+"/"+result]++
}

package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paynlp/internal/domain"
	"paynlp/internal/service"
	"paynlp/mocks"
)

func newEntry(text string) *domain.ParseLogEntry {
	return domain.NewParseLogEntry("req-1", text, "simple", &domain.ParseResult{}, time.Millisecond)
}

func TestParseLogWorker_WritesQueuedEntries(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	var mu sync.Mutex
	var written []string
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		written = append(written, args.Get(1).(*domain.ParseLogEntry).InputText)
	}).Return(nil)

	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{QueueSize: 10, Concurrency: 2}, nil)
	require.NoError(t, w.Create(context.Background(), newEntry("a")))
	require.NoError(t, w.Create(context.Background(), newEntry("b")))
	require.NoError(t, w.Create(context.Background(), newEntry("c")))

	// Canceled before start: Start drains the queue and returns.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, written)
}

func TestParseLogWorker_QueueFull(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{QueueSize: 1}, nil)

	require.NoError(t, w.Create(context.Background(), newEntry("a")))
	err := w.Create(context.Background(), newEntry("b"))

	assert.ErrorIs(t, err, service.ErrParseLogQueueFull)
}

func TestParseLogWorker_WriteErrorDoesNotStop(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ParseLogEntry) bool { return e.InputText == "bad" })).
		Return(errors.New("duplicate key"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ParseLogEntry) bool { return e.InputText == "good" })).
		Return(nil)

	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{QueueSize: 4}, nil)
	require.NoError(t, w.Create(context.Background(), newEntry("bad")))
	require.NoError(t, w.Create(context.Background(), newEntry("good")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestParseLogWorker_RunningWorker(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	done := make(chan struct{})
	repo.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{QueueSize: 4}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	require.NoError(t, w.Create(context.Background(), newEntry("live")))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not written")
	}

	cancel()
	<-stopped
}

func TestParseLogWorker_RefusesWritesAfterShutdown(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{QueueSize: 4}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()
	<-done

	err := w.Create(context.Background(), newEntry("late"))

	assert.ErrorIs(t, err, service.ErrParseLogWorkerStopped)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestParseLogWorker_DelegatesReads(t *testing.T) {
	repo := new(mocks.MockParseLogRepo)
	repo.On("List", mock.Anything, 0, 20).Return([]domain.ParseLogEntry{}, 0, nil)
	repo.On("ListAll", mock.Anything).Return([]domain.ParseLogEntry{}, nil)
	repo.On("Ping", mock.Anything).Return(nil)

	w := service.NewParseLogWorker(repo, service.ParseLogWorkerConfig{}, nil)

	_, _, err := w.List(context.Background(), 0, 20)
	require.NoError(t, err)
	_, err = w.ListAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Ping(context.Background()))
	repo.AssertExpectations(t)
}

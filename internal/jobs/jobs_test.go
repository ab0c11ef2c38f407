package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSaveDirty struct{ mock.Mock }

func (m *MockSaveDirty) Handle(ctx context.Context, command commands.SaveDirtySessionsCommand) (int, error) {
	args := m.Called(ctx, command)
	return args.Int(0), args.Error(1)
}

type MockCloseIdle struct{ mock.Mock }

func (m *MockCloseIdle) Handle(ctx context.Context, command commands.CloseIdleSessionsCommand) ([]kernel.UUID, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDocumentAutosaveJob_Run(t *testing.T) {
	t.Run("should save dirty sessions", func(t *testing.T) {
		handler := &MockSaveDirty{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(2, nil).Once()

		jobs.NewDocumentAutosaveJob(handler, "* * * * * *", discardLogger()).Run()

		handler.AssertExpectations(t)
	})

	t.Run("should survive a failing save", func(t *testing.T) {
		handler := &MockSaveDirty{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, assert.AnError).Once()

		assert.NotPanics(t, jobs.NewDocumentAutosaveJob(handler, "* * * * * *", discardLogger()).Run)
		handler.AssertExpectations(t)
	})
}

func TestSessionReaperJob_Run(t *testing.T) {
	t.Run("should close idle sessions with the configured timeout", func(t *testing.T) {
		handler := &MockCloseIdle{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CloseIdleSessionsCommand) bool {
			return c.IdleTimeout() == 15*time.Minute
		})).Return([]kernel.UUID{kernel.NewUUID()}, nil).Once()

		jobs.NewSessionReaperJob(handler, "0 * * * * *", 15*time.Minute, discardLogger()).Run()

		handler.AssertExpectations(t)
	})

	t.Run("should not run without a timeout", func(t *testing.T) {
		handler := &MockCloseIdle{}

		job := jobs.NewSessionReaperJob(handler, "0 * * * * *", 0, discardLogger())
		job.Run()

		require.Error(t, job.Start())
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should run scheduled jobs until stopped", func(t *testing.T) {
		saveDirty := &MockSaveDirty{}
		ran := make(chan struct{}, 10)
		saveDirty.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
			ran <- struct{}{}
		})
		closeIdle := &MockCloseIdle{}
		closeIdle.On("Handle", mock.Anything, mock.Anything).Return(nil, nil)

		manager := jobs.NewJobManager(saveDirty, closeIdle, jobs.Schedules{
			Autosave:           "* * * * * *",
			Reaper:             "0 0 0 1 1 *",
			SessionIdleTimeout: time.Minute,
		}, discardLogger())
		require.NoError(t, manager.StartAll())

		select {
		case <-ran:
		case <-time.After(3 * time.Second):
			t.Fatal("autosave did not run")
		}
		manager.StopAll()
	})

	t.Run("should reject a malformed schedule", func(t *testing.T) {
		manager := jobs.NewJobManager(&MockSaveDirty{}, &MockCloseIdle{}, jobs.Schedules{
			Autosave:           "every now and then",
			Reaper:             "0 * * * * *",
			SessionIdleTimeout: time.Minute,
		}, discardLogger())

		err := manager.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document autosave job")
	})

	t.Run("should stop the autosave job when the reaper cannot start", func(t *testing.T) {
		manager := jobs.NewJobManager(&MockSaveDirty{}, &MockCloseIdle{}, jobs.Schedules{
			Autosave:           "0 0 0 1 1 *",
			Reaper:             "0 * * * * *",
			SessionIdleTimeout: 0,
		}, discardLogger())

		err := manager.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session reaper job")
	})
}

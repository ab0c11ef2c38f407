package commands_test

import (
	"errors"
	"testing"
	"time"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
	"picking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenSessionCommandHandler_Handle(t *testing.T) {
	t.Run("should register a session on the document", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("Load", mock.Anything, f.doc.ID()).Return(f.doc, nil)
		f.catalog.On("Location", mock.Anything, f.stock.ID()).Return(f.stock, nil)
		f.catalog.On("Location", mock.Anything, f.output.ID()).Return(f.output, nil)
		sessions := &MockSessionRepository{}
		sessions.On("Add", mock.Anything, mock.Anything).Return(nil)

		cmd, err := commands.NewOpenSessionCommand(f.doc.ID())
		require.NoError(t, err)
		err = commands.NewOpenSessionCommandHandler(f.gateway, f.catalog, sessions, f.handler()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		sessions.AssertCalled(t, "Add", mock.Anything, mock.MatchedBy(func(s *session.Session) bool {
			return s.ID().IsEqual(cmd.SessionID()) && s.Document() == f.doc && s.Locations().Source == f.stock
		}))
	})

	t.Run("should scan the code carried by the document", func(t *testing.T) {
		f := newFixture(t)
		f.knows(f.cable)
		f.doc.CarryBarcode("CABLE")
		f.gateway.On("Load", mock.Anything, f.doc.ID()).Return(f.doc, nil)
		f.catalog.On("Location", mock.Anything, f.stock.ID()).Return(f.stock, nil)
		f.catalog.On("Location", mock.Anything, f.output.ID()).Return(f.output, nil)

		var registered *session.Session
		sessions := &MockSessionRepository{}
		sessions.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			registered = args.Get(1).(*session.Session)
		}).Return(nil)
		sessions.On("Acquire", mock.Anything, mock.Anything).Return(func() *session.Session { return registered }, nil)

		processor := commands.NewProcessScanCommandHandler(sessions, f.gateway, f.catalog, f.notifier, discardLogger())
		cmd, err := commands.NewOpenSessionCommand(f.doc.ID())
		require.NoError(t, err)
		err = commands.NewOpenSessionCommandHandler(f.gateway, f.catalog, sessions, processor).Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.NotNil(t, registered)
		assert.Equal(t, 1, registered.Document().LineCount())
		assert.Empty(t, registered.Document().LastScannedBarcode())
	})

	t.Run("should fail on an unknown document", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.gateway.On("Load", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("document", id))

		cmd, err := commands.NewOpenSessionCommand(id)
		require.NoError(t, err)
		err = commands.NewOpenSessionCommandHandler(f.gateway, f.catalog, f.sessions, f.handler()).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCloseSessionCommandHandler_Handle(t *testing.T) {
	t.Run("should save a dirty document and forget the session", func(t *testing.T) {
		f := newFixture(t)
		f.knows(f.cable)
		_, err := f.scan(t, "CABLE")
		require.NoError(t, err)
		f.gateway.On("Save", mock.Anything, f.session.Document()).Return(nil).Once()
		f.sessions.On("Remove", mock.Anything, f.session.ID()).Return(nil).Once()

		cmd, err := commands.NewCloseSessionCommand(f.session.ID())
		require.NoError(t, err)
		err = commands.NewCloseSessionCommandHandler(f.sessions, f.gateway).Handle(t.Context(), cmd)

		require.NoError(t, err)
		f.gateway.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
		assert.False(t, f.session.IsDirty())
	})

	t.Run("should keep the session when saving fails", func(t *testing.T) {
		f := newFixture(t)
		f.knows(f.cable)
		_, err := f.scan(t, "CABLE")
		require.NoError(t, err)
		f.gateway.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		cmd, err := commands.NewCloseSessionCommand(f.session.ID())
		require.NoError(t, err)
		err = commands.NewCloseSessionCommandHandler(f.sessions, f.gateway).Handle(t.Context(), cmd)

		assert.Error(t, err)
		f.sessions.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestSaveDirtySessionsCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	f.knows(f.cable)
	_, err := f.scan(t, "CABLE")
	require.NoError(t, err)

	clean := newFixture(t)
	gone := kernel.NewUUID()
	f.sessions.On("IDs", mock.Anything).Return([]kernel.UUID{f.session.ID(), clean.session.ID(), gone}, nil)
	f.sessions.On("Acquire", mock.Anything, clean.session.ID()).Return(clean.session, nil)
	f.sessions.On("Acquire", mock.Anything, gone).Return(nil, errs.NewObjectNotFoundError("session", gone))
	f.gateway.On("Save", mock.Anything, f.session.Document()).Return(nil).Once()

	saved, err := commands.NewSaveDirtySessionsCommandHandler(f.sessions, f.gateway).
		Handle(t.Context(), commands.NewSaveDirtySessionsCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.False(t, f.session.IsDirty())
	f.gateway.AssertExpectations(t)
}

func TestCloseIdleSessionsCommandHandler_Handle(t *testing.T) {
	idle := newFixture(t)
	idle.session.Touch(time.Now().Add(-time.Hour))
	active := newFixture(t)

	idle.sessions.On("IDs", mock.Anything).Return([]kernel.UUID{idle.session.ID(), active.session.ID()}, nil)
	idle.sessions.On("Acquire", mock.Anything, active.session.ID()).Return(active.session, nil)
	idle.sessions.On("Remove", mock.Anything, idle.session.ID()).Return(nil).Once()

	cmd, err := commands.NewCloseIdleSessionsCommand(15 * time.Minute)
	require.NoError(t, err)
	closed, err := commands.NewCloseIdleSessionsCommandHandler(idle.sessions, idle.gateway).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{idle.session.ID()}, closed)
	idle.sessions.AssertExpectations(t)
	idle.gateway.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNewCloseIdleSessionsCommand(t *testing.T) {
	_, err := commands.NewCloseIdleSessionsCommand(0)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

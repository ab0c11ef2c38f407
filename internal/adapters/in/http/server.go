package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"picking/internal/adapters/out/notifier"
	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
	"picking/internal/generated/servers"
	"picking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers the server delegates to.
type (
	OpenSessionHandler interface {
		Handle(ctx context.Context, command commands.OpenSessionCommand) error
	}

	ProcessScanHandler interface {
		Handle(ctx context.Context, command commands.ProcessScanCommand) (commands.ScanResult, error)
	}

	CloseSessionHandler interface {
		Handle(ctx context.Context, command commands.CloseSessionCommand) error
	}

	GetSessionStateHandler interface {
		Handle(ctx context.Context, query queries.GetSessionStateQuery) (queries.GetSessionStateQueryResponse, error)
	}

	ListOpenDocumentsHandler interface {
		Handle(ctx context.Context, query queries.ListOpenDocumentsQuery) ([]queries.ListOpenDocumentsQueryResponse, error)
	}

	// DialogInbox hands out the confirmations a session has not displayed yet.
	DialogInbox interface {
		PendingDialogs(sessionID kernel.UUID) []notifier.Dialog
	}
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	openSessionHandler  OpenSessionHandler
	processScanHandler  ProcessScanHandler
	closeSessionHandler CloseSessionHandler

	// Query handlers
	getSessionStateHandler   GetSessionStateHandler
	listOpenDocumentsHandler ListOpenDocumentsHandler

	dialogs DialogInbox
	now     func() time.Time
}

func NewServer(
	openSessionHandler OpenSessionHandler,
	processScanHandler ProcessScanHandler,
	closeSessionHandler CloseSessionHandler,
	getSessionStateHandler GetSessionStateHandler,
	listOpenDocumentsHandler ListOpenDocumentsHandler,
	dialogs DialogInbox,
) *Server {
	return &Server{
		openSessionHandler:       openSessionHandler,
		processScanHandler:       processScanHandler,
		closeSessionHandler:      closeSessionHandler,
		getSessionStateHandler:   getSessionStateHandler,
		listOpenDocumentsHandler: listOpenDocumentsHandler,
		dialogs:                  dialogs,
		now:                      time.Now,
	}
}

// ListOpenDocuments handles GET /api/v1/documents.
func (s *Server) ListOpenDocuments(ctx echo.Context, params servers.ListOpenDocumentsParams) error {
	var pickingTypeID *kernel.UUID
	if params.PickingTypeId != nil {
		id, err := toKernelID(*params.PickingTypeId)
		if err != nil {
			return problem(ctx, http.StatusBadRequest, "Invalid picking type: "+err.Error())
		}
		pickingTypeID = &id
	}

	docs, err := s.listOpenDocumentsHandler.Handle(ctx.Request().Context(), queries.NewListOpenDocumentsQuery(pickingTypeID))
	if err != nil {
		return problem(ctx, http.StatusInternalServerError, "Failed to retrieve documents")
	}

	response := make([]servers.Document, len(docs))
	for i, doc := range docs {
		response[i] = servers.Document{
			Id:              doc.ID.Bytes(),
			Name:            doc.Name,
			Status:          doc.Status,
			PickingTypeId:   doc.PickingTypeID.Bytes(),
			PickingTypeName: doc.PickingTypeName,
			LineCount:       doc.LineCount,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// OpenSession handles POST /api/v1/sessions.
func (s *Server) OpenSession(ctx echo.Context) error {
	var body servers.OpenSessionJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid request body")
	}

	documentID, err := toKernelID(body.DocumentId)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid document: "+err.Error())
	}
	cmd, err := commands.NewOpenSessionCommand(documentID)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, err.Error())
	}

	if err := s.openSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err, "Failed to open session")
	}
	return ctx.JSON(http.StatusCreated, servers.SessionCreated{SessionId: cmd.SessionID().Bytes()})
}

// ProcessScan handles POST /api/v1/sessions/{sessionId}/scans. Rejected scans are
// reported in the body; only failed ones map to an error status.
func (s *Server) ProcessScan(ctx echo.Context, sessionId openapi_types.UUID) error {
	var body servers.ProcessScanJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := toKernelID(sessionId)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid session: "+err.Error())
	}
	scannedAt := s.now()
	if body.ScannedAt != nil {
		scannedAt = *body.ScannedAt
	}
	cmd, err := commands.NewProcessScanCommand(id, body.Barcode, scannedAt)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.processScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err, "Failed to process scan")
	}
	return ctx.JSON(http.StatusOK, scanResult(result))
}

// GetSessionState handles GET /api/v1/sessions/{sessionId}.
func (s *Server) GetSessionState(ctx echo.Context, sessionId openapi_types.UUID) error {
	id, err := toKernelID(sessionId)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid session: "+err.Error())
	}
	query, err := queries.NewGetSessionStateQuery(id)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, err.Error())
	}

	state, err := s.getSessionStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to retrieve session")
	}

	response := sessionState(state)
	for _, d := range s.dialogs.PendingDialogs(id) {
		response.Dialogs = append(response.Dialogs, servers.Dialog{Title: d.Title, Body: d.Body})
	}
	return ctx.JSON(http.StatusOK, response)
}

// CloseSession handles DELETE /api/v1/sessions/{sessionId}.
func (s *Server) CloseSession(ctx echo.Context, sessionId openapi_types.UUID) error {
	id, err := toKernelID(sessionId)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, "Invalid session: "+err.Error())
	}
	cmd, err := commands.NewCloseSessionCommand(id)
	if err != nil {
		return problem(ctx, http.StatusBadRequest, err.Error())
	}

	if err := s.closeSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err, "Failed to close session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func problem(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// failure maps use case errors to response codes.
func failure(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return problem(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return problem(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return problem(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return problem(ctx, http.StatusServiceUnavailable, "Session is busy")
	default:
		return problem(ctx, http.StatusInternalServerError, fallback)
	}
}

func scanResult(r commands.ScanResult) servers.ScanResult {
	response := servers.ScanResult{
		Status:     servers.ScanResultStatus(r.Status),
		Notices:    make([]servers.Notice, 0, len(r.Notices)),
		DocumentId: r.DocumentID.Bytes(),
		Rollovers:  r.Rollovers,
	}
	if r.Rejection != nil {
		msg := rejectionMessage(r.Rejection)
		response.Rejection = &msg
	}
	if r.SelectedLineID != nil {
		id := r.SelectedLineID.Bytes()
		response.SelectedLineId = &id
	}
	for _, n := range r.Notices {
		response.Notices = append(response.Notices, notice(n))
	}
	return response
}

// rejectionMessage prefers the operator facing text of known rejections.
func rejectionMessage(err error) string {
	var parseErr *errs.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	var policyErr *errs.PolicyViolationError
	if errors.As(err, &policyErr) {
		return policyErr.Title + ": " + policyErr.Message
	}
	return err.Error()
}

func notice(n session.Notice) servers.Notice {
	out := servers.Notice{
		Severity: servers.NoticeSeverity(n.Severity),
		Message:  n.Message,
		Dialog:   n.Dialog,
	}
	if n.Title != "" {
		title := n.Title
		out.Title = &title
	}
	return out
}

func sessionState(r queries.GetSessionStateQueryResponse) servers.SessionState {
	response := servers.SessionState{
		SessionId:    r.SessionID.Bytes(),
		DocumentId:   r.DocumentID.Bytes(),
		DocumentName: r.DocumentName,
		Status:       r.Status,
		Lines:        make([]servers.Line, 0, len(r.Lines)),
		Instruction: servers.Instruction{
			Class:   r.Instruction.Class,
			Icon:    r.Instruction.Icon,
			Message: r.Instruction.Message,
		},
		Dirty:     r.Dirty,
		Rollovers: r.Rollovers,
		Dialogs:   make([]servers.Dialog, 0),
	}
	response.SelectedLineId = optionalID(r.SelectedLineID)
	if r.PendingPackage != "" {
		pkg := r.PendingPackage
		response.PendingPackage = &pkg
	}
	if r.Location != "" {
		loc := r.Location
		response.Location = &loc
	}
	for _, l := range r.Lines {
		line := servers.Line{
			Id:              l.ID.Bytes(),
			ProductId:       l.ProductID.Bytes(),
			ProductName:     l.ProductName,
			Uom:             l.UoM,
			QtyDone:         l.QtyDone,
			ReservedQty:     l.ReservedQty,
			LocationId:      l.LocationID.Bytes(),
			DestLocationId:  l.DestLocationID.Bytes(),
			PackageId:       optionalID(l.PackageID),
			ResultPackageId: optionalID(l.ResultPackageID),
			Selected:        l.Selected,
		}
		if l.TrackingNumber != "" {
			tn := l.TrackingNumber
			line.TrackingNumber = &tn
		}
		response.Lines = append(response.Lines, line)
	}
	return response
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

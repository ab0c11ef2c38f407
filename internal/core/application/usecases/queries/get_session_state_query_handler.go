package queries

import (
	"context"

	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/domain/services"
	"picking/internal/core/ports"
)

type GetSessionStateQueryHandler struct {
	sessions ports.SessionRepository
}

func NewGetSessionStateQueryHandler(sessions ports.SessionRepository) GetSessionStateQueryHandler {
	return GetSessionStateQueryHandler{sessions: sessions}
}

// Handle waits for a scan in progress on the session to finish before reading it.
func (h GetSessionStateQueryHandler) Handle(ctx context.Context, query GetSessionStateQuery) (GetSessionStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionStateQueryResponse{}, err
	}

	s, release, err := h.sessions.Acquire(ctx, query.SessionID())
	if err != nil {
		return GetSessionStateQueryResponse{}, err
	}
	defer release()

	doc, st := s.Document(), s.State()
	response := GetSessionStateQueryResponse{
		SessionID:      s.ID(),
		DocumentID:     doc.ID(),
		DocumentName:   doc.Name(),
		Status:         doc.Status().String(),
		Lines:          make([]LineView, 0, doc.LineCount()),
		SelectedLineID: st.SelectedLineID,
		Dirty:          s.IsDirty(),
		Rollovers:      s.Rollovers(),
	}
	for _, l := range doc.SortedLines() {
		response.Lines = append(response.Lines, lineView(l, st))
	}
	if st.PendingPackage != nil {
		response.PendingPackage = st.PendingPackage.Name()
	}
	if st.Location != nil {
		response.Location = st.Location.Name()
	}

	prompt := services.NextInstruction(doc, st)
	response.Instruction = Instruction{Class: prompt.Class, Icon: prompt.Icon, Message: prompt.Message}
	return response, nil
}

func lineView(l *picking.Line, st *session.State) LineView {
	return LineView{
		ID:              l.ID(),
		ProductID:       l.Product().ID(),
		ProductName:     l.Product().Name(),
		UoM:             l.UoM().Name(),
		QtyDone:         l.QtyDone().String(),
		ReservedQty:     l.ReservedQty().String(),
		TrackingNumber:  l.TrackingNumber(),
		LocationID:      l.LocationID(),
		DestLocationID:  l.DestLocationID(),
		PackageID:       l.PackageID(),
		ResultPackageID: l.ResultPackageID(),
		Selected:        st.SelectedLineID != nil && st.SelectedLineID.IsEqual(l.ID()),
	}
}

package commands

import (
	"context"
	"fmt"
	"time"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/ports"
)

// ScanProcessor processes a scan for a session.
type ScanProcessor interface {
	Handle(ctx context.Context, command ProcessScanCommand) (ScanResult, error)
}

// OpenSessionCommandHandler loads a document with its location trees and registers a
// session for it. A code carried over from a previous document is scanned right away.
type OpenSessionCommandHandler struct {
	gateway   ports.DocumentGateway
	catalog   ports.BarcodeCatalog
	sessions  ports.SessionRepository
	processor ScanProcessor
	now       func() time.Time
}

func NewOpenSessionCommandHandler(
	gateway ports.DocumentGateway,
	catalog ports.BarcodeCatalog,
	sessions ports.SessionRepository,
	processor ScanProcessor,
) OpenSessionCommandHandler {
	return OpenSessionCommandHandler{
		gateway:   gateway,
		catalog:   catalog,
		sessions:  sessions,
		processor: processor,
		now:       time.Now,
	}
}

func (h OpenSessionCommandHandler) Handle(ctx context.Context, command OpenSessionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	doc, err := h.gateway.Load(ctx, command.DocumentID())
	if err != nil {
		return err
	}
	locations, err := h.locations(ctx, doc)
	if err != nil {
		return err
	}

	s, err := session.NewSession(command.SessionID(), doc, locations, h.now())
	if err != nil {
		return err
	}
	if err = h.sessions.Add(ctx, s); err != nil {
		return err
	}

	carried := doc.LastScannedBarcode()
	if carried == "" || !doc.Status().IsEditable() {
		return nil
	}
	scan, err := NewProcessScanCommand(s.ID(), carried, h.now())
	if err != nil {
		return err
	}
	if _, err = h.processor.Handle(ctx, scan); err != nil {
		return fmt.Errorf("scan %q carried by %s: %w", carried, doc.Name(), err)
	}

	s, release, err := h.sessions.Acquire(ctx, s.ID())
	if err != nil {
		return err
	}
	defer release()
	s.Document().CarryBarcode("")
	return nil
}

func (h OpenSessionCommandHandler) locations(ctx context.Context, doc *picking.Document) (session.Locations, error) {
	source, err := h.catalog.Location(ctx, doc.SourceLocationID())
	if err != nil {
		return session.Locations{}, fmt.Errorf("source location of %s: %w", doc.Name(), err)
	}
	dest, err := h.catalog.Location(ctx, doc.DestLocationID())
	if err != nil {
		return session.Locations{}, fmt.Errorf("destination location of %s: %w", doc.Name(), err)
	}

	var def *catalog.Location
	if id := doc.Config().DefaultLocationID; id != nil {
		if def, err = h.catalog.Location(ctx, *id); err != nil {
			return session.Locations{}, fmt.Errorf("default location of %s: %w", doc.Name(), err)
		}
	}
	return session.Locations{Source: source, Destination: dest, Default: def}, nil
}

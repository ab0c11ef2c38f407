package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/domain/services"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

const (
	msgSubstitution  = "Product not found. The default product on the operation type will be added instead"
	msgNothingToPack = "There is nothing eligible to put in a pack."
	msgNotEditable   = "This operation is not editable anymore."

	// maxScanTasks bounds the work a single scan may expand into: one substitution
	// and one rollover at most.
	maxScanTasks = 6
)

var (
	ErrRepeatedRollover = errors.New("scan needs a second successor document")
	ErrNoSuccessor      = errors.New("no successor document could be opened")
	ErrScanNotSettled   = errors.New("scan did not settle")
)

// ScanResult tells the scanning client how its scan ended.
type ScanResult struct {
	Status         session.Outcome
	Rejection      error
	Notices        []session.Notice
	DocumentID     kernel.UUID
	SelectedLineID *kernel.UUID
	Rollovers      int
}

// ProcessScanCommandHandler is the session controller. It runs a scanned code through
// classification, policy evaluation, location, package and line resolution on
// working copies of the session document and state, then commits them. A rejected
// scan commits the state only.
//
// A scan that would add lines to a document at its line capacity saves and validates
// the document, opens a successor and scans the code again there. An unknown license
// plate is scanned as the default product followed by the code itself.
type ProcessScanCommandHandler struct {
	sessions   ports.SessionRepository
	gateway    ports.DocumentGateway
	classifier services.Classifier
	policy     services.PolicyEvaluator
	resolver   services.LineResolver
	packages   services.PackageReconciler
	notifier   ports.Notifier
	observers  []ports.StateObserver
	logger     *slog.Logger
	now        func() time.Time
}

func NewProcessScanCommandHandler(
	sessions ports.SessionRepository,
	gateway ports.DocumentGateway,
	catalog ports.BarcodeCatalog,
	notifier ports.Notifier,
	logger *slog.Logger,
	observers ...ports.StateObserver,
) ProcessScanCommandHandler {
	return ProcessScanCommandHandler{
		sessions:   sessions,
		gateway:    gateway,
		classifier: services.NewClassifier(catalog),
		policy:     services.NewPolicyEvaluator(),
		resolver:   services.NewLineResolver(catalog),
		packages:   services.NewPackageReconciler(catalog),
		notifier:   notifier,
		observers:  observers,
		logger:     logger.With("component", "session_controller"),
		now:        time.Now,
	}
}

type scanTask struct {
	raw         string
	substituted bool
}

// scanRun accumulates the result of one command across its tasks.
type scanRun struct {
	session    *session.Session
	result     ScanResult
	rollovers  int
	rolledOver bool
}

func (r *scanRun) reject(err error) {
	r.result.Status = session.OutcomeRejected
	r.result.Rejection = err
}

// stepResult is what one task did to the working copies.
type stepResult struct {
	changed    bool
	rejection  error
	notices    []session.Notice
	substitute bool
	action     barcode.Action
	putInPack  *services.PutInPackRequest
}

func (h ProcessScanCommandHandler) Handle(ctx context.Context, command ProcessScanCommand) (ScanResult, error) {
	if err := command.Validate(); err != nil {
		return ScanResult{}, err
	}

	s, release, err := h.sessions.Acquire(ctx, command.SessionID())
	if err != nil {
		return ScanResult{}, err
	}
	defer release()

	run := &scanRun{session: s, result: ScanResult{Status: session.OutcomeHandled}}
	err = h.run(ctx, run, command.Raw())
	s.Touch(h.now())

	switch {
	case err != nil:
		run.result.Status = session.OutcomeFailed
		h.logger.ErrorContext(ctx, "scan failed",
			"session_id", s.ID().String(), "barcode", command.Raw(), "error", err)
	case run.rolledOver && run.result.Status == session.OutcomeHandled:
		run.result.Status = session.OutcomeRolledOver
	case run.result.Status == session.OutcomeRejected:
		h.logger.InfoContext(ctx, "scan rejected",
			"session_id", s.ID().String(), "barcode", command.Raw(), "reason", run.result.Rejection)
	}

	run.result.DocumentID = s.Document().ID()
	run.result.SelectedLineID = s.State().SelectedLineID
	run.result.Rollovers = run.rollovers
	h.publish(ctx, s, command.Raw(), run.result)
	return run.result, err
}

func (h ProcessScanCommandHandler) run(ctx context.Context, run *scanRun, raw string) error {
	queue := []scanTask{{raw: raw}}
	for done := 0; len(queue) > 0; done++ {
		if done == maxScanTasks {
			return fmt.Errorf("%w: %q", ErrScanNotSettled, raw)
		}
		task := queue[0]
		queue = queue[1:]

		next, err := h.runTask(ctx, run, task)
		if err != nil {
			return err
		}
		if run.result.Rejection != nil {
			return nil
		}
		queue = append(next, queue...)
	}
	return nil
}

func (h ProcessScanCommandHandler) runTask(ctx context.Context, run *scanRun, task scanTask) ([]scanTask, error) {
	s := run.session
	original := s.Document()
	if !original.Status().IsEditable() {
		err := errs.NewPolicyViolationError("", msgNotEditable)
		h.notify(ctx, run, session.Danger("", msgNotEditable))
		run.reject(err)
		return nil, nil
	}

	doc, st := original.Clone(), s.State().Clone()
	st.ScannedBarcode = task.raw
	result, err := h.step(ctx, s.Locations(), doc, st, task)
	if err != nil {
		return nil, err
	}

	atCapacity := doc.Config().CapacityReached(original.LineCount())
	if atCapacity && (result.substitute || doc.LineCount() > original.LineCount()) {
		return h.rollover(ctx, run, task)
	}

	if result.rejection != nil {
		// A rejected scan keeps the document it started from; only the state moves on.
		s.Commit(original, st, result.changed)
		h.notify(ctx, run, result.notices...)
		run.reject(result.rejection)
		return nil, nil
	}
	s.Commit(doc, st, result.changed)
	h.notify(ctx, run, result.notices...)

	switch {
	case result.substitute:
		h.notify(ctx, run, session.Warning(msgSubstitution))
		return []scanTask{
			{raw: doc.Config().DefaultProductBarcode},
			{raw: task.raw, substituted: true},
		}, nil
	case result.action != barcode.ActionNone:
		return nil, h.runAction(ctx, run, result.action)
	case result.putInPack != nil:
		return nil, h.putInPack(ctx, run, result.putInPack)
	}
	return nil, nil
}

// step runs the scan pipeline on the working copies.
func (h ProcessScanCommandHandler) step(
	ctx context.Context,
	locations session.Locations,
	doc *picking.Document,
	st *session.State,
	task scanTask,
) (stepResult, error) {
	data, err := h.classifier.Classify(ctx, services.ClassifyInput{
		Raw:          task.raw,
		Filters:      lotFilters(doc, st),
		Config:       doc.Config(),
		Locations:    locations,
		LineSelected: st.SelectedLineID != nil,
	})
	if err != nil {
		return stepResult{}, err
	}
	if data.Action != barcode.ActionNone {
		return stepResult{action: data.Action}, nil
	}

	if check := h.policy.Check(doc, st, &data); !check.OK {
		return stepResult{
			changed:   true,
			rejection: check.Err(),
			notices:   []session.Notice{session.Danger(check.Title, check.Message)},
		}, nil
	}

	if err = h.resolver.Prepare(ctx, st, &data); err != nil {
		return stepResult{}, err
	}
	if h.resolver.ApplyLocation(doc, st, &data) {
		return stepResult{changed: true}, nil
	}

	effect, err := h.packages.Reconcile(ctx, doc, st, &data)
	if err != nil {
		return stepResult{}, err
	}
	if effect.Stopped {
		return stepResult{
			changed:   effect.Changed,
			rejection: effect.Rejection,
			notices:   effect.Notices,
			putInPack: effect.PutInPack,
		}, nil
	}

	res, err := h.resolver.Resolve(ctx, doc, st, &data, task.substituted)
	if err != nil {
		return stepResult{}, err
	}
	switch res.Outcome {
	case services.OutcomeRejected:
		return stepResult{rejection: res.Rejection, notices: res.Notices}, nil
	case services.OutcomeSubstitute:
		return stepResult{substitute: true}, nil
	case services.OutcomeAction:
		return stepResult{action: data.Action}, nil
	}
	return stepResult{changed: true, notices: res.Notices}, nil
}

// rollover finalizes the full document and moves the session to a successor that
// receives the task again.
func (h ProcessScanCommandHandler) rollover(ctx context.Context, run *scanRun, task scanTask) ([]scanTask, error) {
	if run.rollovers > 0 {
		return nil, fmt.Errorf("%w: %q", ErrRepeatedRollover, task.raw)
	}
	s := run.session
	current := s.Document()

	if err := h.gateway.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("save %s before validation: %w", current.Name(), err)
	}
	s.MarkSaved()

	validated, err := h.gateway.Validate(ctx, current)
	if err != nil {
		return nil, err
	}
	s.Commit(validated, s.State(), false)
	h.notify(ctx, run, session.Success(fmt.Sprintf("%s has been validated", validated.Name())))

	successor, err := h.gateway.OpenSuccessor(ctx, validated, task.raw)
	if err != nil {
		return nil, fmt.Errorf("open successor of %s: %w", validated.Name(), err)
	}
	if successor == nil {
		return nil, fmt.Errorf("%w: after %s", ErrNoSuccessor, validated.Name())
	}
	// The carried code is scanned right away.
	successor.CarryBarcode("")
	s.LoadDocument(successor, s.Locations(), true)

	run.rollovers++
	run.rolledOver = true
	h.logger.InfoContext(ctx, "document rolled over",
		"session_id", s.ID().String(), "validated", validated.Name(), "successor", successor.Name())
	return []scanTask{task}, nil
}

func (h ProcessScanCommandHandler) runAction(ctx context.Context, run *scanRun, action barcode.Action) error {
	s := run.session
	switch action {
	case barcode.ActionValidate:
		if err := h.gateway.Save(ctx, s.Document()); err != nil {
			return err
		}
		s.MarkSaved()
		validated, err := h.gateway.Validate(ctx, s.Document())
		if err != nil {
			return err
		}
		s.Commit(validated, s.State(), false)
		h.notify(ctx, run, session.Success(fmt.Sprintf("%s has been validated", validated.Name())))
	case barcode.ActionPutInPack:
		return h.putInPack(ctx, run, &services.PutInPackRequest{})
	case barcode.ActionDiscard:
		doc, err := h.gateway.Load(ctx, s.Document().ID())
		if err != nil {
			return err
		}
		s.LoadDocument(doc, s.Locations(), false)
		h.notify(ctx, run, session.Info("Changes discarded"))
	}
	return nil
}

func (h ProcessScanCommandHandler) putInPack(ctx context.Context, run *scanRun, req *services.PutInPackRequest) error {
	s := run.session
	pkg, err := h.gateway.PutInPack(ctx, s.Document(), req.Name, req.PackageType)
	if errors.Is(err, picking.ErrNothingToPack) {
		h.notify(ctx, run, session.Warning(msgNothingToPack))
		run.reject(err)
		return nil
	}
	if err != nil {
		return err
	}
	id := pkg.ID()
	s.State().LastScannedPackageID = &id
	s.MarkSaved()
	h.notify(ctx, run, session.Success(fmt.Sprintf("Products were put in %s", pkg.Name())))
	return nil
}

func (h ProcessScanCommandHandler) notify(ctx context.Context, run *scanRun, notices ...session.Notice) {
	for _, n := range notices {
		if n.Dialog {
			h.notifier.ConfirmDialog(ctx, run.session.ID(), n.Title, n.Message)
		} else {
			h.notifier.Notify(ctx, run.session.ID(), n)
		}
		run.result.Notices = append(run.result.Notices, n)
	}
}

func (h ProcessScanCommandHandler) publish(ctx context.Context, s *session.Session, raw string, result ScanResult) {
	snapshot := session.Snapshot{
		SessionID:      s.ID(),
		DocumentID:     s.Document().ID(),
		DocumentName:   s.Document().Name(),
		Barcode:        raw,
		Outcome:        result.Status,
		LineCount:      s.Document().LineCount(),
		SelectedLineID: s.State().SelectedLineID,
		Rollovers:      result.Rollovers,
	}
	for _, o := range h.observers {
		o.StateChanged(ctx, snapshot)
	}
}

// lotFilters restricts lot lookups to the product of the line being worked on.
func lotFilters(doc *picking.Document, st *session.State) barcode.Filters {
	current := doc.LineByRef(st.SelectedLineID)
	if current == nil {
		current = doc.LineByRef(st.LastScannedLineID)
	}
	if current == nil || !current.Product().IsTracked() {
		return barcode.Filters{}
	}
	id := current.Product().ID()
	return barcode.Filters{LotProductID: &id}
}

package services

import (
	"fmt"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/pkg/errs"
)

const (
	titleUnexpectedScan       = "Not the expected scan"
	titleMandatorySource      = "Mandatory Source Location"
	titleMandatoryDestination = "Mandatory Destination Location"
)

// Check is the verdict of the policy evaluator.
type Check struct {
	OK      bool
	Title   string
	Message string
}

// Err converts a failed check into a PolicyViolationError, nil when OK.
func (c Check) Err() error {
	if c.OK {
		return nil
	}
	return errs.NewPolicyViolationError(c.Title, c.Message)
}

func pass() Check { return Check{OK: true} }

func fail(title, message string) Check {
	return Check{Title: title, Message: message}
}

// PolicyEvaluator enforces the scanning restrictions of the operation type.
//
// Rules are evaluated in a fixed order and the first failing one wins:
//  1. mandatory source location
//  2. restrict scanning to products
//  3. package before each product
//  4. package or put in pack after each product
//  5. destination before switching product
//
// Evaluation records what the scan implies in st: the source location the operator
// is implicitly working in, a scanned source for rule 1 and a scanned destination for
// rule 5. A destination scanned while only a source may be scanned is reinterpreted
// as a source.
type PolicyEvaluator struct{}

func NewPolicyEvaluator() PolicyEvaluator {
	return PolicyEvaluator{}
}

func (PolicyEvaluator) Check(doc *picking.Document, st *session.State, data *barcode.Data) Check {
	cfg := doc.Config()
	selected := doc.LineByRef(st.SelectedLineID)

	if cfg.RestrictScanSourceLocation && data.Location == nil {
		if st.LastScannedSource != nil && data.DestLocation != nil && cfg.RestrictScanDestLocation == picking.DestNone {
			data.Location, data.DestLocation = data.DestLocation, nil
		}
		if st.LastScannedSource == nil && st.CurrentLocation() != nil {
			st.LastScannedSource = st.CurrentLocation()
		}
	}

	product := data.Product
	packageWithQuants := data.Package != nil && data.Package.HasQuants()
	packageScanned := data.Package != nil || data.PackageType != nil
	switchesProduct := product != nil && selected != nil && !selected.Product().IsEqual(product)
	movesLocation := data.Location != nil || data.DestLocation != nil

	switch {
	case cfg.RestrictScanSourceLocation && st.CurrentLocation() == nil && selected == nil:
		if data.Location != nil {
			st.Location = data.Location
			st.LastScannedSource = data.Location
			return pass()
		}
		name := "the source location"
		if st.Location != nil {
			name = st.Location.Name()
		}
		return fail(titleMandatorySource, fmt.Sprintf("You are supposed to scan %s or another source location", name))

	case cfg.RestrictScanProduct &&
		!(product != nil || packageWithQuants || selected != nil) &&
		!(cfg.RestrictScanSourceLocation && data.Location != nil && selected == nil):
		if data.Lot != nil {
			return fail(titleUnexpectedScan, "Scan a product before scanning a tracking number")
		}
		return fail(titleUnexpectedScan, "You must scan a product")

	case cfg.RestrictPutInPack == picking.PackBeforeEachProduct &&
		st.PendingPackage == nil &&
		(selected == nil || switchesProduct || movesLocation) &&
		!packageScanned:
		return fail(titleUnexpectedScan, "You must scan a package")

	case cfg.RestrictPutInPack == picking.PackMandatory &&
		!packageScanned &&
		selected != nil && !selected.IsPacked() &&
		(switchesProduct || movesLocation):
		return fail(titleUnexpectedScan, "You must scan a package or put in pack")

	case cfg.RestrictScanDestLocation == picking.DestMandatory && st.LastScannedDest == nil:
		if data.DestLocation != nil {
			st.LastScannedDest = data.DestLocation
			return pass()
		}
		if switchesProduct {
			return fail(titleMandatoryDestination, fmt.Sprintf(
				"Please scan destination location for %s before scanning other product",
				selected.Product().Name(),
			))
		}
	}

	return pass()
}

package services

import (
	"errors"

	"picking/internal/pkg/errs"
)

// ErrPackageAlreadyScanned rejects a package whose content is already on the document.
var ErrPackageAlreadyScanned = errs.NewPolicyViolationError("", "This package is already scanned.")

// isScanError reports whether err rejects the scan rather than failing it.
func isScanError(err error) bool {
	return errors.Is(err, errs.ErrParse) ||
		errors.Is(err, errs.ErrPolicyViolation) ||
		errors.Is(err, errs.ErrDuplicateSerial) ||
		errors.Is(err, errs.ErrQuantityConflict) ||
		errors.Is(err, errs.ErrValueIsInvalid)
}

// scanErrorMessage extracts the operator facing text of a scan error.
func scanErrorMessage(err error) string {
	var parseErr *errs.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	var policyErr *errs.PolicyViolationError
	if errors.As(err, &policyErr) {
		return policyErr.Message
	}
	return err.Error()
}

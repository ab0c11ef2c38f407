package services

import (
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
)

// Instruction is the prompt telling the operator what to scan next.
type Instruction struct {
	Class   string
	Icon    string
	Message string
}

// NextInstruction derives the prompt from the document and session state.
func NextInstruction(doc *picking.Document, st *session.State) Instruction {
	cfg := doc.Config()
	selected := doc.LineByRef(st.SelectedLineID)

	switch {
	case doc.Status() == picking.StatusDone:
		return Instruction{Class: "picture_done", Icon: "check", Message: "This operation is done"}
	case cfg.RestrictScanSourceLocation && st.CurrentLocation() == nil && selected == nil:
		return Instruction{Class: "scan_src", Icon: "sign-out", Message: "Scan the source location"}
	case cfg.RestrictPutInPack == picking.PackBeforeEachProduct && st.PendingPackage == nil &&
		(selected == nil || selected.IsPacked()):
		return Instruction{Class: "scan_package", Icon: "archive", Message: "Scan a package"}
	case selected != nil && selected.Product().IsTracked() && selected.TrackingNumber() == "":
		msg := "Scan a lot number"
		if selected.Product().IsSerial() {
			msg = "Scan a serial number"
		}
		return Instruction{Class: "scan_lot", Icon: "barcode", Message: msg}
	case cfg.RestrictScanDestLocation == picking.DestMandatory && st.LastScannedDest == nil && selected != nil &&
		selected.QtyDone().IsPositive():
		return Instruction{Class: "scan_dest", Icon: "sign-in", Message: "Scan the destination location"}
	}
	return Instruction{Class: "scan_product", Icon: "tags", Message: "Scan a product"}
}

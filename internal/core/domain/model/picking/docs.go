// Package picking models the transfer document being scanned: its lines, its lifecycle
// and the per operation type policy configuration that constrains scanning.
//
// Document is the aggregate root. Lines are only reachable through it, and every line
// mutation keeps the line invariants:
//   - a serial tracked line never holds more than one unit
//   - a lot assigned to a line belongs to the line's product
//   - quantities are never negative
//
// The scan pipeline works on a Clone of the document and swaps it in once the scan is
// settled, so a scan abandoned for a document rollover leaves no trace.
package picking

// Package barcode holds the values exchanged during one scan cycle: the raw ScanEvent
// coming from the scanner, the Filters narrowing the lookup and the classified Data the
// catalog returns for it.
//
// Data is a tagged union in spirit. A code normally resolves to one record kind, but a
// few combinations are meaningful (a packaging carries its product, a weight code carries
// a product and a quantity, a lot may be paired with its product), so the matched records
// are kept side by side and Kind reports the dominant one.
package barcode

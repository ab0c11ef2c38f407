// Package catalog contains the read-side records a picking session resolves scanned codes
// against: products, units of measure, locations, lots and serials, packages, package
// types, packagings, quants and owners.
//
// Catalog records are immutable once constructed. They are loaded by the barcode catalog
// adapter and shared between sessions, so none of them expose setters.
//
// Location hierarchy:
//
//	WH (parent path "1/")
//	└── WH/Stock (parent path "1/7/")
//	    └── WH/Stock/Shelf 1 (parent path "1/7/12/")
//
// A location is a child of another when its parent path starts with the other's path,
// which is how scanned locations are sorted into source and destination roles.
package catalog

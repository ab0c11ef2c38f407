// Package services contains the stateless domain services of the scan pipeline:
//   - Classifier: turns a raw code into classified barcode.Data
//   - PolicyEvaluator: enforces the operation type's scanning restrictions
//   - LineResolver: finds or creates the line a classified code affects
//   - PackageReconciler: handles package scans (pack, defer, assign, expand)
//
// The services never own session state. They receive the working copy of the
// document and the session State of the scan in progress and mutate them only as
// each operation documents.
package services

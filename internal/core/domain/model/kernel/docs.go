// Package kernel provides the domain primitives shared by every picking model:
//   - UUID: identifier value object for documents, lines, sessions and catalog records
//   - Quantity: exact decimal quantity used for done, reserved and converted amounts
//
// Both types are immutable values and safe for concurrent use.
package kernel

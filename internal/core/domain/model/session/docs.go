// Package session holds the state of one operator scanning one document: what was
// scanned last, which line is selected and which package waits to be attached.
//
// A Session is owned by exactly one scan at a time; the session store hands it out
// under an exclusive lock. State is reset whenever a new document is loaded.
package session

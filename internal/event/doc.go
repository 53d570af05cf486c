// Package event provides the fixture record read from a source calendar
// and the rules for giving it a stable identifier.
//
// Events that arrive without a UID get one derived from a SHA-256 hash of
// their title, start time and location, so reprocessing the same feed
// always yields the same identifier.
package event

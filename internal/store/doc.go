// Package store caches the signed-in session on disk or in memory.
//
// A remembered session is written to a file under the home directory, sealed
// with a passphrase when one is configured. Otherwise the session lives only
// as long as the process. All methods are concurrency-safe.
package store

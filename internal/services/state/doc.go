// Package state holds the client-side mirror of server data shared by the
// feature services: the last fetched value, a loading flag and the last error.
package state

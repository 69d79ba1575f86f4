// Package domain defines core data models and interfaces shared across the app.
// It contains plain server-defined records, socket event payloads and
// contracts (interfaces) only. Records are consumed as-is; lifecycle is owned
// by the backend.
package domain

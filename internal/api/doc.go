// Package api provides the HTTP implementation of the marketplace REST
// interfaces declared in package domain.
//
// The backend is the source of truth for every record; this package only
// maps typed calls onto the fixed endpoint table in endpoints.go.
//
// Supported resource groups:
//   - auth (login, register, password reset, email verify, OTP, social login)
//   - services (CRUD, search/filter)
//   - bookings (create, list, detail, status, rating)
//   - payments (process, list, detail, refund)
//   - chats (list, detail, create, add message, mark read)
//   - favorites, reviews, providers, users
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. The session token is injected as a bearer header by the client
// on every request. Non-2xx statuses are returned as *Error values carrying
// the method, path, status and the server's message; they match
// domain.ErrUnauthorized, domain.ErrForbidden and domain.ErrNotFound through
// errors.Is. Nothing is retried.
package api

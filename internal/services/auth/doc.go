// Package auth signs the user in and out and owns the session token.
//
// The Service is the token source for the REST client and the chat socket.
// Sessions are cached through a domain.SessionStore; a cached token whose
// JWT expiry has passed is dropped on restore.
package auth

// Package chat keeps the client-held chat list and the open conversation in
// step with server-pushed socket events, while the REST API stays the source
// of truth for history.
//
// Ordering between the socket push and the REST echo of the same message is
// not guaranteed. Messages are therefore merged by identity: a message with an
// ID already present replaces the earlier copy instead of being appended, so
// a send that arrives over both paths is held once. Every other merge is last
// write wins.
//
// # Sending
//
// SendMessage generates the message identity locally, emits send_message on
// the socket and writes the same message through REST. A socket failure is
// recorded in the error state; a REST failure is returned to the caller.
//
// # Opening a conversation
//
// OpenChat fetches history over REST, joins the socket room and signals a
// read receipt, in that order. Pushes for the chat that arrive while the
// history request is in flight are buffered and merged afterwards.
//
// # Typing
//
// Remote typing flags expire locally after a fixed window even when no
// stop event arrives. Local typing is debounced: one typing emit per burst,
// followed by stop_typing once input has been idle for the window.
package chat

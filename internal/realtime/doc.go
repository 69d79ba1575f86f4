// Package realtime maintains the persistent chat socket.
//
// One Client owns one gorilla/websocket connection per signed-in session and
// exchanges JSON frames of the form {"event": "...", "data": {...}}.
//
// Lifecycle
//
//   - Connect refuses to start without a session token.
//   - After every successful dial the client sends an authenticate frame with
//     the token. Until the server answers authenticated{success:true}, only
//     transport and auth events are dispatched; chat events are dropped.
//     A failed authentication is reported but the transport stays up.
//   - Dropped connections are re-dialled with exponential backoff up to a
//     bounded number of consecutive attempts. When the server itself closes
//     the connection, the client re-dials immediately.
//   - Handlers run one at a time on the connection goroutine, in arrival
//     order. On returns a detach function.
package realtime

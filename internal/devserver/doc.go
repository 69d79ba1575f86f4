// Package devserver is an in-memory stand-in for the marketplace backend,
// covering what the chat client talks to.
//
// HTTP API (JSON, wrapped as {"success": true, "data": ...})
//
//	POST /api/auth/register        create an account, returns {token, user}
//	POST /api/auth/login           returns {token, user}
//	GET  /api/auth/me              the caller
//	GET  /api/users/search?q=      directory lookup by name or email
//	GET  /api/chats                the caller's chats with unread counts
//	POST /api/chats                open (or reuse) a chat with participantId
//	GET  /api/chats/{id}           one chat with its history
//	POST /api/chats/{id}/messages  store a message; clientId makes it idempotent
//	PUT  /api/chats/{id}/read      mark the peer's messages read
//
// Socket (GET /ws, JSON frames {"event", "data"})
//
// The first frame must be authenticate {token}. The server answers
// authenticated {success, userId | error}; any other event before that gets
// an error frame. After that: join_chat, send_message, mark_read, typing and
// stop_typing, answered with new_message, messages_read, user_typing,
// user_stop_typing, chat_update and error.
//
// All state lives in memory and is lost on exit. There is no persistence,
// no payments and no booking logic.
package devserver

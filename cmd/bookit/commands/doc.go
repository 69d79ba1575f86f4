// Package commands defines the bookit CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login / logout / whoami        Manage the cached session
//   - services search                Search the catalog
//   - bookings list|create|status|rate
//   - payments list|refund
//   - favorites list|add|remove
//   - reviews list|create
//   - provider metrics|availability  Provider dashboard
//   - chat list|open|send|watch      Real-time chat
//
// # Implementation
//
// The root command loads configuration (bookit.toml, BOOKIT_* environment,
// then flags) and builds the dependency graph before any subcommand runs, so
// handlers share one REST client, one session and one logger.
package commands

// Package app loads configuration and wires application dependencies for the CLI.
//
// It builds the logger, session store, REST client, feature services, chat
// socket and chat sync from Config, exposing them via the Wire struct for
// commands to use.
package app

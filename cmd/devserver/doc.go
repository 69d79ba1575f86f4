// Command devserver runs the in-memory marketplace backend used for local
// development of the bookit client and its chat.
//
// Usage
//
//	devserver [-addr :5000] [-secret s] [-seed]
//
// With -seed two accounts are created, both with password "password1":
// customer@example.com (customer) and provider@example.com (provider).
//
// All state is held in memory and lost on exit. REST lives under /api and the
// chat socket at /ws; see package internal/devserver for the protocol.
package main

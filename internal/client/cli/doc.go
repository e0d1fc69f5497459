// Package cli provides the interactive HireBoard command-line client.
//
// It wires configuration, the board gateway (remote gRPC or local SQLite),
// the board store and an interactive REPL. The board is printed as four
// stage columns; cards are moved, searched, edited and deleted by command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// and then waits for pending background writes.
package cli

// Package cli is the interactive moviebook terminal client.
//
// It wires configuration, the session store, the auth flows and the guarded
// screens into a REPL. Every command maps to a route or a flow; after each
// one the current screen is drawn again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

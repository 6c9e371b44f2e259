// Package session holds the client session: the access token and the user it
// belongs to.
//
// Roles
//
// Display code receives a Reader and can only observe the session. The auth
// flows receive a Writer, which adds Set and Clear. Handing out the narrower
// interface is what keeps the auth flows the only writers.
//
// Storage
//
// The authoritative copy lives in a SQLite database opened for the lifetime
// of the process (an in-memory database by default) and migrated with goose.
// Reads are served from an in-memory snapshot so that views can re-derive
// their state synchronously. Writes go through a transaction first and then
// replace the snapshot and notify subscribers.
package session

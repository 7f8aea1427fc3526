// Package persist is the serialization boundary between the session
// store and durable local storage. Two gateways are provided: a JSON
// file (default) and a SQLite database. Both read and write the same
// versionless snapshot: the chat counter plus all chats with their
// titles, messages and creation times. The active-chat pointer is never
// persisted.
//
// Storage failures are non-fatal by contract: callers log and continue
// with in-memory state.
package persist

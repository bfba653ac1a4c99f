// Package memory is an in-process implementation of the unit of work,
// the repositories and the report reader.
//
// One transaction runs at a time. Writes are staged on a copy of the
// committed maps and become visible only on Commit. Stored aggregates are
// never handed out: reads return copies and writes store copies, so a
// caller mutating an aggregate never touches committed state.
//
// The service falls back to this store when no database is configured.
package memory

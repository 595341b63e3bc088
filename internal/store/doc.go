// Package store persists production records backed by SQLite.
//
// It holds the entities the reconciliation engine consumes and produces:
// shots and their frame ranges, cuts, the cut items recording how each shot
// appeared in a given cut revision, and versions. The engine itself never
// talks to the database; the reconcile driver fetches records up front and
// hands plain structs to the engine, then writes accepted changes back
// through the batch API once a pass is complete.
//
// The schema is embedded and guarded by a version gate. A mismatch is
// reported rather than migrated; users clear the database after schema
// changes.
package store

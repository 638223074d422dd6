// Package store implements the local-first persistence layer for the
// training journal: a libSQL database file under the user's data directory
// that can be upgraded, in the background, into an embedded replica of a
// remote Turso database.
//
// # Architecture
//
//	┌──────────────┐   SaveDay/DeleteDay    ┌──────────────────┐
//	│  single      │ ─────────────────────▶ │  Store           │
//	│  writer      │                        │  ┌────────────┐  │  sync
//	└──────────────┘                        │  │ *sql.DB    │──┼───────▶ Turso
//	┌──────────────┐   Status (per frame)   │  │ (swappable)│  │ (when
//	│  UI loop     │ ─────────────────────▶ │  └────────────┘  │  connected)
//	└──────────────┘                        └──────────────────┘
//
// Open is synchronous and touches only local disk, so the first frame of the
// UI never waits on the network. UpgradeToReplica runs later, from a
// background goroutine, and swaps the live database handle under an
// exclusive lock once the replica is ready.
//
// # Connection lifecycle
//
// The store starts Disconnected. A successful replica upgrade moves it to
// Connected; a failed upgrade moves it to Error with the underlying message
// and leaves the local handle in place, so the journal keeps working
// offline. Sync failures after a successful upgrade do not change the state:
// the periodic replica pull and the next opportunistic push are the retry
// path, and flapping the indicator on every transient network error helps
// nobody.
//
// # Write discipline
//
// Every save carries a complete day record and rewrites both child
// collections inside one transaction. Writers are expected to funnel
// mutations through a single goroutine (see the writer package); the store
// itself only guarantees that a write never observes a half-swapped handle.
//
// # On-disk layout
//
//	~/.mountains/mountains.db        the database file
//	~/.mountains/mountains.db-wal    write-ahead log sidecar
//	~/.mountains/mountains.db-shm    shared-memory sidecar
//	~/.mountains/mountains.db-info   replica metadata; its presence marks the
//	                                 file as an embedded replica
//	~/.mountains/mountains.lock      single-instance flock
//
// A local-only database file cannot be converted in place into an embedded
// replica. The first upgrade therefore deletes the file and its sidecars
// after writing a best-effort JSONL backup of the current rows; rows not yet
// seen by the remote are lost by design, which is why callers load the
// journal into memory before triggering the upgrade.
package store

// Package variant persists named filter snapshots per personalisation key and
// replays them into a filter scope. SQLiteStore keeps variants across
// restarts; MemoryStore serves tests and short-lived sessions.
package variant

// Package store persists a local chat transcript ledger in SQLite.
//
// The ledger is a client-side convenience log: each completed chat turn is
// appended so the TUI's /history command can show recent conversation
// across runs. It is not backend state and the in-memory transcript never
// rehydrates from it; a fresh process always starts with an empty chat.
package store

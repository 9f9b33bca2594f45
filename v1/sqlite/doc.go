// Package sqlite builds unidb executors for embedded SQLite databases using
// github.com/mattn/go-sqlite3.
//
//	exec, err := sqlite.NewAsync(sqlite.Config{Path: "app.db"})
//	if err != nil {
//		return err
//	}
//	defer exec.Close()
//
// Write transactions are started with BEGIN IMMEDIATE and wait up to
// BusyTimeout for a lock, so concurrent writers from one pool serialize instead
// of failing. File databases use WAL journaling.
package sqlite

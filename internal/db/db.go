package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open connects to the Postgres instance backing the dispatch ledger.
func Open(dbURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

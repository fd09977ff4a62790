package sqldataset

import (
	"database/sql"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

/*
OpenSQLite3 takes a path to an SQLite3 database file and returns an Adapter
that works on the file's database or an error if it fails to open as an
sqlite3 database.
*/
func OpenSQLite3(path string) (Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

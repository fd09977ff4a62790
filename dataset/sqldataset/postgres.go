package sqldataset

import (
	"database/sql"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

/*
OpenPostgreSQL takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect
to it.
*/
func OpenPostgreSQL(url string) (Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &adapter{db}, nil
}

/*
Package sqldataset provides functions to read datasets from tables on SQL
databases.

The table is expected to hold a column for each feature, named as the
feature. Nominal features are stored as text with the category label and
numeric features as numbers. NULL values, empty strings and '?' are
missing values.
*/
package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
Adapter is an interface providing the database specifics
needed to query a dataset from a table.
*/
type Adapter interface {
	// DB returns the database connection pool of the adapter
	DB() *sql.DB
	// ColumnName takes a feature name and returns the quoted
	// column name for it or an error if the name cannot be used.
	ColumnName(string) (string, error)
	// Close closes the database of the adapter
	Close() error
}

type adapter struct {
	db *sql.DB
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(name string) (string, error) {
	return quoteIdentifier(name)
}

func (a *adapter) Close() error {
	return a.db.Close()
}

/*
ReadDataset takes a context, an Adapter, a table name, a slice of features
and the name of the class feature and returns a dataset with an instance
for each row on the table or an error.
*/
func ReadDataset(ctx context.Context, a Adapter, table string, features []feature.Feature, className string) (*dataset.Dataset, error) {
	query, err := SelectQuery(a, table, features)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	var instances []dataset.Instance
	values := make([]sql.NullString, len(features))
	dest := make([]interface{}, len(features))
	for i := range values {
		dest[i] = &values[i]
	}
	for n := 0; rows.Next(); n++ {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", n, table, err)
		}
		inst, err := instanceFromRow(values, features)
		if err != nil {
			return nil, fmt.Errorf("row %d of table %s: %w", n, table, err)
		}
		instances = append(instances, inst)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows of table %s: %v", table, err)
	}
	return dataset.New(features, className, instances)
}

/*
SelectQuery takes an Adapter, a table name and a slice of features and
returns the query selecting the column of every feature from the table,
in feature order.
*/
func SelectQuery(a Adapter, table string, features []feature.Feature) (string, error) {
	if len(features) == 0 {
		return "", fmt.Errorf("no features to select from table %s", table)
	}
	var buf bytes.Buffer
	buf.WriteString("SELECT ")
	for i, f := range features {
		c, err := a.ColumnName(f.Name())
		if err != nil {
			return "", err
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c)
	}
	t, err := quoteIdentifier(table)
	if err != nil {
		return "", err
	}
	buf.WriteString(" FROM ")
	buf.WriteString(t)
	return buf.String(), nil
}

func instanceFromRow(values []sql.NullString, features []feature.Feature) (dataset.Instance, error) {
	inst := make(dataset.Instance, len(features))
	for i, f := range features {
		if !values[i].Valid {
			inst[f.Name()] = feature.Missing()
			continue
		}
		v, err := dataset.ParseValue(f, values[i].String)
		if err != nil {
			return nil, err
		}
		inst[f.Name()] = v
	}
	return inst, nil
}

func quoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`identifier '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

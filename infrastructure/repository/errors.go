package repository

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

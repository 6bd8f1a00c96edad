// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// knowing which driver produced them.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by id matches no row, or when a
// write references a row that does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a row with the same identifying fields
// already exists. Handlers should surface it as a warning, not a failure.
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a delete cannot proceed because other
// rows still reference the target (e.g. a venue with shows). Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// MySQL server error numbers mapped onto the sentinels above.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps driver errors onto repository sentinels.  Errors it
// does not recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case mysqlDuplicateEntry:
		return errors.Join(ErrDuplicate, err)
	case mysqlRowIsReferenced:
		return errors.Join(ErrConflict, err)
	case mysqlNoReferencedRow:
		return errors.Join(ErrNotFound, err)
	}
	return err
}

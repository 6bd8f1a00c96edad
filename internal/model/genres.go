package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// genreSeparator joins tags in the `genres` column.  Genre choices never
// contain it.
const genreSeparator = ","

// Genres is an ordered list of genre tags persisted as a single
// delimited string.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	return strings.Join(g, genreSeparator), nil
}

// Scan implements sql.Scanner.  NULL and the empty string both yield an
// empty, non-nil list so JSON output is always an array.
func (g *Genres) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("genres: unsupported scan type %T", src)
	}
	out := Genres{}
	if s != "" {
		for _, tag := range strings.Split(s, genreSeparator) {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	*g = out
	return nil
}

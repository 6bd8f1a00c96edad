package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates the directory tables when they are missing.  Shows keep
// their venue and artist alive: deleting either while shows reference it
// fails with error 1451.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(120) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               CHAR(2)      NOT NULL,
		address             VARCHAR(120) NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		genres              VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
		website             VARCHAR(120) NOT NULL DEFAULT '',
		seeking_talent      BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		UNIQUE KEY uq_venue_identity (name, address, city, state),
		KEY idx_venue_state (state)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(120) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               CHAR(2)      NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		genres              VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
		website             VARCHAR(120) NOT NULL DEFAULT '',
		seeking_venue       BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		UNIQUE KEY uq_artist_identity (name, phone, city, state),
		KEY idx_artist_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		artist_id  BIGINT      NOT NULL,
		venue_id   BIGINT      NOT NULL,
		start_time DATETIME(6) NOT NULL,
		PRIMARY KEY (artist_id, venue_id, start_time),
		KEY idx_show_venue_start (venue_id, start_time),
		KEY idx_show_start (start_time),
		CONSTRAINT fk_show_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE RESTRICT,
		CONSTRAINT fk_show_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)  ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.  Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

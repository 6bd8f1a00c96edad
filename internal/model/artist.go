package model

// Artist represents a performer listed in the directory.  It corresponds
// to a row in the `artists` table.  City is stored upper-cased.
type Artist struct {
	ID                 int64  `db:"id" json:"id"`
	Name               string `db:"name" json:"name"`
	City               string `db:"city" json:"city"`
	State              string `db:"state" json:"state"`
	Phone              string `db:"phone" json:"phone"`
	ImageLink          string `db:"image_link" json:"image_link"`
	Genres             Genres `db:"genres" json:"genres"`
	FacebookLink       string `db:"facebook_link" json:"facebook_link"`
	Website            string `db:"website" json:"website"`
	SeekingVenue       bool   `db:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string `db:"seeking_description" json:"seeking_description"`
}

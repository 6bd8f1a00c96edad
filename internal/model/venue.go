package model

// Venue represents a place that hosts shows.  It corresponds to a row in
// the `venues` table.  City and Address are stored upper-cased so that
// duplicate detection is insensitive to how a submitter typed them.
type Venue struct {
	ID                 int64  `db:"id" json:"id"`
	Name               string `db:"name" json:"name"`
	City               string `db:"city" json:"city"`
	State              string `db:"state" json:"state"`
	Address            string `db:"address" json:"address"`
	Phone              string `db:"phone" json:"phone"`
	ImageLink          string `db:"image_link" json:"image_link"`
	Genres             Genres `db:"genres" json:"genres"`
	FacebookLink       string `db:"facebook_link" json:"facebook_link"`
	Website            string `db:"website" json:"website"`
	SeekingTalent      bool   `db:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string `db:"seeking_description" json:"seeking_description"`
}

package form

import (
	"strings"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// Venue is the venue listing form.
type Venue struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Address            string   `json:"address" form:"address"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	Genres             []string `json:"genres" form:"genres"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// Validate trims every field in place and reports rejected fields as
// Errors.
func (f *Venue) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ImageLink = strings.TrimSpace(f.ImageLink)
	f.Genres = trimAll(f.Genres)
	f.FacebookLink = strings.TrimSpace(f.FacebookLink)
	f.WebsiteLink = strings.TrimSpace(f.WebsiteLink)
	f.SeekingDescription = strings.TrimSpace(f.SeekingDescription)

	errs := Errors{}
	p := profile{
		name: f.Name, city: f.City, state: f.State, phone: f.Phone, imageLink: f.ImageLink,
		facebookLink: f.FacebookLink, website: f.WebsiteLink, genres: f.Genres,
	}
	p.validate(errs)
	if f.Address == "" {
		errs.Add("address", msgRequired)
	}
	return errs.Err()
}

// Model converts a validated form into a venue.  City and address are
// stored upper-cased so duplicates differing only in case collide.
func (f *Venue) Model() model.Venue {
	return model.Venue{
		Name:               f.Name,
		City:               strings.ToUpper(f.City),
		State:              f.State,
		Address:            strings.ToUpper(f.Address),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFromModel prefills the edit form with a stored venue.
func VenueFromModel(v model.Venue) Venue {
	return Venue{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             append([]string{}, v.Genres...),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

package form

import (
	"strings"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// Artist is the artist listing form.
type Artist struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	Genres             []string `json:"genres" form:"genres"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// Validate trims every field in place and reports rejected fields as
// Errors.
func (f *Artist) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
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
	return errs.Err()
}

// Model converts a validated form into an artist with the city
// upper-cased.
func (f *Artist) Model() model.Artist {
	return model.Artist{
		Name:               f.Name,
		City:               strings.ToUpper(f.City),
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// ArtistFromModel prefills the edit form with a stored artist.
func ArtistFromModel(a model.Artist) Artist {
	return Artist{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             append([]string{}, a.Genres...),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

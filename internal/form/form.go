// Package form validates and normalizes the venue, artist and show
// listing forms before anything is written.
package form

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Errors maps a form field to the messages explaining why it was
// rejected.  A non-empty Errors is returned as an error.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid form")
	for i, f := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f + ": " + strings.Join(e[f], ", "))
	}
	return b.String()
}

// Add records msg against field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Err returns e as an error, or nil when no field was rejected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

const (
	msgRequired = "This field is required."
	msgChoice   = "Not a valid choice."
	msgCity     = "Please enter valid city name"
	msgPhone    = "Phone format needs to be ###-###-####"
	msgURL      = "Invalid URL."
	msgFacebook = "Invalid facebook URL"
	msgFBFormat = "Please enter valid facebook link format"
	msgWebsite  = "Invalid website URL"
)

var (
	cityPattern     = regexp.MustCompile(`^[a-zA-Z]+(?:[\s-][a-zA-Z]+)*$`)
	phonePattern    = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}`)
	facebookPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?facebook\.com/`)
)

// States lists the accepted two-letter state codes.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID", "IL", "IN", "IA",
	"KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR",
	"MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

// GenreChoices lists the accepted genre tags.
var GenreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk", "Hip-Hop",
	"Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop", "Punk", "R&B", "Reggae",
	"Rock n Roll", "Soul", "Other",
}

// profile holds the fields venues and artists share.
type profile struct {
	name, city, state, phone, imageLink, facebookLink, website string
	genres                                                     []string
}

func (p *profile) validate(errs Errors) {
	if p.name == "" {
		errs.Add("name", msgRequired)
	}

	switch {
	case p.city == "":
		errs.Add("city", msgRequired)
	case !cityPattern.MatchString(p.city):
		errs.Add("city", msgCity)
	}

	switch {
	case p.state == "":
		errs.Add("state", msgRequired)
	case !slices.Contains(States, p.state):
		errs.Add("state", msgChoice)
	}

	if !phonePattern.MatchString(p.phone) {
		errs.Add("phone", msgPhone)
	}

	if p.imageLink != "" && !isURL(p.imageLink) {
		errs.Add("image_link", msgURL)
	}

	if len(p.genres) == 0 {
		errs.Add("genres", msgRequired)
	}
	for _, g := range p.genres {
		if !slices.Contains(GenreChoices, g) {
			errs.Add("genres", fmt.Sprintf("'%s' is not a valid choice.", g))
		}
	}

	if p.facebookLink != "" {
		if !isURL(p.facebookLink) {
			errs.Add("facebook_link", msgFacebook)
		} else if !facebookPattern.MatchString(p.facebookLink) {
			errs.Add("facebook_link", msgFBFormat)
		}
	}

	if p.website != "" && !isURL(p.website) {
		errs.Add("website_link", msgWebsite)
	}
}

// isURL accepts absolute http(s) URLs whose host has a dotted name.
func isURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host != "" && strings.Contains(host, ".") && !strings.HasSuffix(host, ".")
}

// trimAll strips surrounding whitespace from every string and drops
// entries left empty.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

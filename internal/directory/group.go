package directory

import "github.com/iliyamo/fyyur-directory/internal/model"

// VenueSummary is a venue row in the area listing.
type VenueSummary struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	NumUpcomingShows int          `json:"num_upcoming_shows"`
	Genres           model.Genres `json:"genres"`
}

// Area is every venue sharing one (city, state) pair.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type areaKey struct {
	city, state string
}

// GroupByArea groups venues by their exact (city, state) pair.  Areas are
// emitted in the order their first venue appears; upcoming maps venue id
// to its upcoming show count.
func GroupByArea(venues []model.Venue, upcoming map[int64]int) []Area {
	areas := []Area{}
	index := make(map[areaKey]int)
	for _, v := range venues {
		k := areaKey{city: v.City, state: v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
			Genres:           v.Genres,
		})
	}
	return areas
}

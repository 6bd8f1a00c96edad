package directory

import "strings"

// Match is a single search hit.
type Match struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is the response of a name search.
type SearchResult struct {
	Count int     `json:"count"`
	Data  []Match `json:"data"`
}

// MatchesName reports whether term occurs in name ignoring case.  The
// empty term matches every name.
func MatchesName(name, term string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// Search keeps the candidates whose name contains term, in order.
func Search(term string, candidates []Match) SearchResult {
	out := SearchResult{Data: []Match{}}
	for _, c := range candidates {
		if MatchesName(c.Name, term) {
			out.Data = append(out.Data, c)
		}
	}
	out.Count = len(out.Data)
	return out
}

package services

import "strings"

// authorRule maps author credit substrings to a canonical artist label.
type authorRule struct {
	members []string
	artist  string
}

// matches reports whether any member name appears in the author credits.
func (r authorRule) matches(author string) bool {
	for _, member := range r.members {
		if strings.Contains(author, member) {
			return true
		}
	}
	return false
}

// authorRules is evaluated in priority order; the first matching rule wins,
// so group membership depends on this ordering.
var authorRules = []authorRule{
	{
		members: []string{"Brooke Fraser", "Ligertwood", "Reuben Morgan", "Aodhan King", "Houston", "Marty Sampson", "Benjamin Hastings"},
		artist:  "Live Hillsong",
	},
	{members: []string{"Steven Furtick"}, artist: "Elevation"},
	{members: []string{"Kari Jobe"}, artist: "Kari Jobe"},
	{members: []string{"Aaron Moses"}, artist: "Maverick City Music"},
	{members: []string{"Nate Moore"}, artist: "Housefires"},
	{members: []string{"Mia Fieldes"}, artist: "Vertical"},
	{members: []string{"Leslie Jordan"}, artist: "All Sons"},
	{members: []string{"Cory Asbury"}, artist: "Cory Asbury"},
	{
		members: []string{"McClure", "Helser", "Jenn Johnson", "Brian Johnson"},
		artist:  "Live Bethel",
	},
}

// MapAuthorsToArtistQuery decorates a song title with a canonical artist label
// derived from its free-text author credits, for use as a search query.
//
// When no rule matches, the artist falls back to the author text before the
// first comma, then before the literal token "and". An empty author returns
// the title unchanged.
func MapAuthorsToArtistQuery(title, author string) string {
	if author == "" {
		return title
	}

	artist := ""
	for _, rule := range authorRules {
		if rule.matches(author) {
			artist = rule.artist
			break
		}
	}

	if artist == "" {
		artist = strings.Split(author, ",")[0]
		artist = strings.Split(artist, "and")[0]
	}

	return title + " " + strings.TrimSpace(artist)
}

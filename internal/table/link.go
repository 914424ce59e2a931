package table

import (
	"net/url"
	"regexp"
	"strings"
)

// PlayerLink holds what a row's hyperlink resolves to. At most one field is set.
type PlayerLink struct {
	ID     string
	AltURL string
}

// Canonical profile pages live at /players/<initial>/<id>.shtml.
var profilePath = regexp.MustCompile(`^/players/[a-z]/([A-Za-z0-9.'_-]+)\.shtml$`)

// ResolveLink classifies href. Canonical profile links yield the player id;
// any other link (minor-league register pages and the like) is kept as an
// absolute alternate URL resolved against base. An empty href yields neither.
func ResolveLink(href string, base *url.URL) PlayerLink {
	href = strings.TrimSpace(href)
	if href == "" {
		return PlayerLink{}
	}

	u, err := url.Parse(href)
	if err != nil {
		return PlayerLink{AltURL: href}
	}

	if u.Host == "" || base == nil || strings.EqualFold(u.Host, base.Host) {
		if m := profilePath.FindStringSubmatch(u.Path); m != nil {
			return PlayerLink{ID: m[1]}
		}
	}

	if base != nil {
		u = base.ResolveReference(u)
	}
	return PlayerLink{AltURL: u.String()}
}

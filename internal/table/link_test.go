package table

import (
	"net/url"
	"testing"
)

func TestResolveLink(t *testing.T) {
	base, _ := url.Parse("https://www.baseball-reference.com")

	tests := []struct {
		name   string
		href   string
		wantID string
		wantAl string
	}{
		{
			name:   "canonical profile",
			href:   "/players/c/cavalca01.shtml",
			wantID: "cavalca01",
		},
		{
			name:   "absolute canonical profile",
			href:   "https://www.baseball-reference.com/players/a/abramcj01.shtml",
			wantID: "abramcj01",
		},
		{
			name:   "minor league register page",
			href:   "/register/player.fcgi?id=lara--000and",
			wantAl: "https://www.baseball-reference.com/register/player.fcgi?id=lara--000and",
		},
		{
			name:   "profile path on another host",
			href:   "https://example.com/players/c/cavalca01.shtml",
			wantAl: "https://example.com/players/c/cavalca01.shtml",
		},
		{
			name:   "players index is not a profile",
			href:   "/players/c/",
			wantAl: "https://www.baseball-reference.com/players/c/",
		},
		{
			name: "empty",
			href: "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLink(tt.href, base)
			if got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
			if got.AltURL != tt.wantAl {
				t.Errorf("AltURL = %q, want %q", got.AltURL, tt.wantAl)
			}
		})
	}
}

func TestResolveLink_ExactlyOne(t *testing.T) {
	hrefs := []string{
		"/players/w/woodja03.shtml",
		"/register/player.fcgi?id=green-000eli",
		"/teams/WSN/2026.shtml",
		"%zz",
	}
	for _, href := range hrefs {
		got := ResolveLink(href, nil)
		if (got.ID == "") == (got.AltURL == "") {
			t.Errorf("ResolveLink(%q) = %+v, want exactly one field set", href, got)
		}
	}
}

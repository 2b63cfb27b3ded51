// Package cards defines the site's content cards and the catalog that
// loads the blog and links collections.
package cards

import "strings"

// DefaultDomain is the site's own domain. Cards pointing at it are online.
const DefaultDomain = "manni-dm.dev"

// Card is a renderable link entry.
type Card struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metadata    string `json:"metadata,omitempty"`
}

// Status classifies where a card leads.
type Status string

const (
	Internal Status = "internal"
	Online   Status = "online"
	External Status = "external"
)

// Class returns the indicator class for the status, e.g. "status-online".
func (s Status) Class() string {
	return "status-" + string(s)
}

// StatusOf derives a card's status. Metadata mentioning "caution" marks it
// internal; a URL on the site's own domain or metadata mentioning
// "written" marks it online; everything else is external. Matching is
// case-insensitive.
func StatusOf(c Card, domain string) Status {
	meta := strings.ToLower(c.Metadata)
	if strings.Contains(meta, "caution") {
		return Internal
	}
	if domain != "" && strings.Contains(strings.ToLower(c.URL), strings.ToLower(domain)) {
		return Online
	}
	if strings.Contains(meta, "written") {
		return Online
	}
	return External
}

// HasMetadata reports whether the card's metadata line should be shown.
func (c Card) HasMetadata() bool {
	return strings.TrimSpace(c.Metadata) != ""
}

// IsLocalArticle reports whether url names a same-site HTML fragment that
// is loaded in place rather than navigated to.
func IsLocalArticle(url string) bool {
	return url != "" &&
		!strings.HasPrefix(url, "http") &&
		!strings.HasPrefix(url, "//") &&
		strings.Contains(url, ".html")
}

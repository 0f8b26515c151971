package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector identifies which website a saved page came from. Saved pages
// have no request URL, so it reads the URL the page declares about
// itself: the canonical link, og:url, or a base href, in that order.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the page's host, lowercased and without a "www."
// prefix. Returns "" if no host can be determined.
func (d *Detector) Detect(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, sel := range []struct{ css, attr string }{
		{`link[rel="canonical"]`, "href"},
		{`meta[property="og:url"]`, "content"},
		{`meta[name="og:url"]`, "content"},
		{`base[href]`, "href"},
	} {
		v, ok := doc.Find(sel.css).First().Attr(sel.attr)
		if !ok {
			continue
		}
		if host := Host(v); host != "" {
			return host
		}
	}
	return ""
}

// Host extracts the normalized host from an absolute URL or a bare domain.
func Host(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

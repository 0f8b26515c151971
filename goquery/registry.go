package goquery

import (
	"sort"
	"strings"

	"github.com/fwojciec/recipex"
)

var _ recipex.SiteRegistry = (*Registry)(nil)

// Registry holds the site configurations and maps saved pages to them.
// It uses a Detector to read the page's declared host and returns the
// matching site, falling back to the generic site when the host is
// unknown.
type Registry struct {
	detector *Detector
	fallback *recipex.Site
	sites    map[string]*recipex.Site
	domains  map[string]*recipex.Site
}

// NewRegistry creates a new Registry. The fallback site is returned by
// SiteForHTML when no registered domain matches; nil means an empty
// generic site.
func NewRegistry(fallback *recipex.Site) *Registry {
	if fallback == nil {
		fallback = &recipex.Site{ID: recipex.GenericSiteID}
	}
	r := &Registry{
		detector: NewDetector(),
		fallback: fallback,
		sites:    make(map[string]*recipex.Site),
		domains:  make(map[string]*recipex.Site),
	}
	r.sites[fallback.ID] = fallback
	return r
}

// Register adds a site. A site registered under an existing ID replaces
// the earlier one.
func (r *Registry) Register(site *recipex.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if site.ID == r.fallback.ID {
		r.fallback = site
	}
	r.sites[site.ID] = site
	if host := Host(site.Domain); host != "" {
		r.domains[host] = site
	}
	return nil
}

// Site implements recipex.SiteRegistry.
func (r *Registry) Site(id string) (*recipex.Site, error) {
	if s, ok := r.sites[id]; ok {
		return s, nil
	}
	return nil, recipex.Errorf(recipex.ENOTFOUND, "unknown site %q", id)
}

// Sites implements recipex.SiteRegistry.
func (r *Registry) Sites() []*recipex.Site {
	out := make([]*recipex.Site, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SiteForHTML implements recipex.SiteRegistry. Subdomains match their
// parent domain's site.
func (r *Registry) SiteForHTML(html string) *recipex.Site {
	host := r.detector.Detect(html)
	for host != "" {
		if s, ok := r.domains[host]; ok {
			return s
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return r.fallback
}

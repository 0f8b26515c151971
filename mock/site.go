package mock

import "github.com/fwojciec/recipex"

var _ recipex.SiteRegistry = (*SiteRegistry)(nil)

// SiteRegistry is a mock implementation of recipex.SiteRegistry.
type SiteRegistry struct {
	SiteFn        func(id string) (*recipex.Site, error)
	SitesFn       func() []*recipex.Site
	SiteForHTMLFn func(html string) *recipex.Site
}

func (r *SiteRegistry) Site(id string) (*recipex.Site, error) {
	return r.SiteFn(id)
}

func (r *SiteRegistry) Sites() []*recipex.Site {
	return r.SitesFn()
}

func (r *SiteRegistry) SiteForHTML(html string) *recipex.Site {
	return r.SiteForHTMLFn(html)
}

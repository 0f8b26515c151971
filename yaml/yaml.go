// Package yaml loads site configurations from YAML files using
// gopkg.in/yaml.v3.
package yaml

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/recipex"
	"gopkg.in/yaml.v3"
)

//go:embed sites/*.yaml
var embedded embed.FS

// DefaultSites returns the site configurations shipped with the binary.
func DefaultSites() ([]*recipex.Site, error) {
	sub, err := fs.Sub(embedded, "sites")
	if err != nil {
		return nil, err
	}
	return LoadSites(sub)
}

// LoadSites decodes every *.yaml file at the root of fsys, in name order.
// Unknown keys, invalid records and duplicate IDs are EINVALID errors
// naming the offending file. A record without an id takes the file name.
func LoadSites(fsys fs.FS) ([]*recipex.Site, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "invalid sites directory: %v", err)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	sites := make([]*recipex.Site, 0, len(names))
	for _, name := range names {
		site, err := loadSite(fsys, name)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[site.ID]; ok {
			return nil, recipex.Errorf(recipex.EINVALID, "%s: site %q already defined in %s", name, site.ID, prev)
		}
		seen[site.ID] = name
		sites = append(sites, site)
	}
	return sites, nil
}

func loadSite(fsys fs.FS, name string) (*recipex.Site, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec siteRecord
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil && !errors.Is(err, io.EOF) {
		return nil, recipex.Errorf(recipex.EINVALID, "%s: %v", name, err)
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(path.Base(name), ".yaml")
	}

	site := rec.toSite()
	if err := site.Validate(); err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "%s: %s", name, recipex.ErrorMessage(err))
	}
	if _, ok := recipex.LookupLocale(site.Language); site.Language != "" && !ok {
		return nil, recipex.Errorf(recipex.EINVALID, "%s: unknown language %q", name, site.Language)
	}
	return site, nil
}

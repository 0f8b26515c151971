package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/recipex"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, s := range deps.Sites.Sites() {
		domain := s.Domain
		if domain == "" {
			domain = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", s.ID, domain, s.Locale().Code, s.DurationFormat().Preset)
	}
	return nil
}

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read page: %w", err)
	}
	site := deps.Sites.SiteForHTML(string(data))
	fmt.Fprintln(deps.Stdout, site.ID)
	return nil
}

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipex.ErrorMessage(err))
		return err
	}
	parser, err := site.IngredientParser()
	if err != nil {
		return err
	}

	ing := parser.Parse(c.Line)
	if ing == nil {
		fmt.Fprintln(deps.Stdout, "(no ingredient)")
		return nil
	}
	unit := "-"
	if ing.Unit != nil {
		unit = *ing.Unit
	}
	amount := "-"
	if !ing.Amount.IsNull() {
		amount = ing.Amount.String()
	}
	fmt.Fprintf(deps.Stdout, "name: %s\namount: %s\nunit: %s\n", ing.Name, amount, unit)
	return nil
}

// Run executes the duration command.
func (c *DurationCmd) Run(deps *Dependencies) error {
	loc, ok := recipex.LookupLocale(c.Language)
	if !ok {
		return recipex.Errorf(recipex.EINVALID, "unknown language %q (known: %v)", c.Language, recipex.LocaleCodes())
	}
	f := recipex.DurationFormat{
		Preset:      recipex.DurationPreset(c.Preset),
		FoldMinutes: c.Fold,
		Words:       loc.Duration,
	}
	out := recipex.ParseDuration(c.Token, f)
	if out == nil {
		return recipex.Errorf(recipex.EINVALID, "invalid duration %q", c.Token)
	}
	fmt.Fprintln(deps.Stdout, *out)
	return nil
}

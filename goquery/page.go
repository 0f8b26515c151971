package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/recipex"
	"golang.org/x/net/html"
)

// page is one parsed document together with everything the field
// extractors need. It is built per Extract call and never shared.
type page struct {
	doc      *goquery.Document
	block    recipex.Block
	site     *recipex.Site
	locale   recipex.Locale
	parser   *recipex.IngredientParser
	duration recipex.DurationFormat
	suffix   *regexp.Regexp
}

// rules returns the site's DOM rules for a field.
func (p *page) rules(field string) []recipex.Selector {
	return p.site.Fields[field]
}

// firstText returns the first non-empty text produced by sels.
func (p *page) firstText(sels []recipex.Selector) *string {
	for _, sel := range sels {
		for _, v := range p.values(sel, false) {
			if s := recipex.Normalize(v); s != "" {
				return &s
			}
		}
	}
	return nil
}

// firstList returns the items of the first selector that yields any.
func (p *page) firstList(sels []recipex.Selector) []string {
	for _, sel := range sels {
		if items := nonEmpty(p.values(sel, true)); len(items) > 0 {
			return items
		}
	}
	return nil
}

// values evaluates one selector. With list set, a matched ul or ol
// contributes one value per li.
func (p *page) values(sel recipex.Selector, list bool) []string {
	switch {
	case sel.CSS != "":
		return selectionValues(p.doc.Find(sel.CSS), sel.Attr, list)
	case sel.XPath != "":
		return p.xpathValues(sel, list)
	case sel.Heading != "":
		re, err := regexp.Compile(sel.Heading)
		if err != nil {
			return nil
		}
		return selectionValues(p.afterHeading(re, sel.Sibling), sel.Attr, list)
	}
	return nil
}

func (p *page) xpathValues(sel recipex.Selector, list bool) []string {
	if len(p.doc.Nodes) == 0 {
		return nil
	}
	nodes, err := htmlquery.QueryAll(p.doc.Nodes[0], sel.XPath)
	if err != nil {
		return nil
	}
	var out []string
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode:
			out = append(out, n.Data)
		case sel.Attr != "":
			out = append(out, htmlquery.SelectAttr(n, sel.Attr))
		case list && isListNode(n):
			items, _ := htmlquery.QueryAll(n, "./li")
			for _, li := range items {
				out = append(out, nodeText(li))
			}
		default:
			out = append(out, nodeText(n))
		}
	}
	return out
}

// afterHeading finds the first h1-h6 whose text matches re and returns the
// first following sibling matching filter. Headings wrapped in a container
// are looked up through the container's siblings.
func (p *page) afterHeading(re *regexp.Regexp, filter string) *goquery.Selection {
	if filter == "" {
		filter = "p, ul, ol, div, table"
	}
	var found *goquery.Selection
	p.doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !re.MatchString(recipex.Normalize(h.Text())) {
			return true
		}
		for cur := h; cur.Length() > 0 && !cur.Is("body"); cur = cur.Parent() {
			if next := cur.NextAllFiltered(filter).First(); next.Length() > 0 {
				found = next
				return false
			}
		}
		return true
	})
	if found == nil {
		return &goquery.Selection{}
	}
	return found
}

// headingSelectors builds heading rules for a locale's section titles.
func headingSelectors(titles []string, sibling string) []recipex.Selector {
	if len(titles) == 0 {
		return nil
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return []recipex.Selector{{
		Heading: `(?i)^\s*(?:` + strings.Join(quoted, "|") + `)(?:[\s:.,(]|$)`,
		Sibling: sibling,
	}}
}

func selectionValues(s *goquery.Selection, attr string, list bool) []string {
	var out []string
	s.Each(func(_ int, el *goquery.Selection) {
		if attr != "" {
			if v, ok := el.Attr(attr); ok {
				out = append(out, v)
			}
			return
		}
		if list && el.Is("ul, ol") {
			el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				out = append(out, selectionText(li))
			})
			return
		}
		out = append(out, selectionText(el))
	})
	return out
}

// selectionText returns the text of s with block elements separated by
// spaces, so "<p>a</p><p>b</p>" reads "a b" rather than "ab".
func selectionText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "section": true, "article": true,
	"header": true, "footer": true, "blockquote": true, "dt": true, "dd": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "svg": true,
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
	case html.CommentNode:
		return
	}
	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

func isListNode(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}

func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		if s := recipex.Normalize(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// meta returns the content of the first meta tag whose name or property
// equals one of keys.
func meta(doc *goquery.Document, keys ...string) string {
	for _, k := range keys {
		for _, attr := range []string{"property", "name", "itemprop"} {
			if v, ok := doc.Find(`meta[` + attr + `="` + k + `"]`).First().Attr("content"); ok {
				if v = recipex.Normalize(v); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// metaAll returns the contents of every meta tag with the given property.
func metaAll(doc *goquery.Document, key string) []string {
	var out []string
	doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok {
			if v = recipex.Normalize(v); v != "" {
				out = append(out, v)
			}
		}
	})
	return out
}

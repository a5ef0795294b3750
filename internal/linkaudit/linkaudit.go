// Package linkaudit finds relative references left in produced pages.
//
// Pages are served from a single dynamic route, so any relative href or src
// that did not go through the route (or storage) resolves against the route
// URL and breaks. The audit is diagnostic only and never changes content.
package linkaudit

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Reference is a relative URL found in a page.
type Reference struct {
	Element string // Tag name, e.g. "a"
	Attr    string // Attribute name, e.g. "href"
	Value   string // Attribute value as written
}

// auditedAttrs maps each audited element to its URL attribute.
//
// Not audited:
//   - srcset attributes (comma-separated format)
//   - CSS url() references
//   - URLs built in scripts
var auditedAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Img:    "src",
	atom.Script: "src",
}

// Auditor reports relative references that bypass the dynamic route.
type Auditor struct {
	routePrefix string
}

// New creates an Auditor for pages served under route (e.g. "www").
func New(route string) *Auditor {
	return &Auditor{routePrefix: route + "?"}
}

// Audit parses content and returns its relative references in document order.
func (a *Auditor) Audit(content string) ([]Reference, error) {
	doc, err := parseHTML(content)
	if err != nil {
		return nil, err
	}

	var refs []Reference
	a.walk(doc, &refs)
	return refs, nil
}

// walk traverses the DOM collecting relative references.
func (a *Auditor) walk(n *html.Node, refs *[]Reference) {
	if n.Type == html.ElementNode {
		if attrName, ok := auditedAttrs[n.DataAtom]; ok {
			for _, attr := range n.Attr {
				if attr.Key == attrName && a.isRelative(attr.Val) {
					*refs = append(*refs, Reference{Element: n.Data, Attr: attr.Key, Value: attr.Val})
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		a.walk(c, refs)
	}
}

// isRelative returns true if value resolves against the page URL and is not
// a dynamic route link.
func (a *Auditor) isRelative(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	// Skip URLs (http, https, data, mailto, tel, javascript, protocol-relative)
	lower := strings.ToLower(value)
	for _, prefix := range []string{"http://", "https://", "data:", "mailto:", "tel:", "javascript:", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}

	// Skip anchors and absolute paths
	if strings.HasPrefix(value, "#") || strings.HasPrefix(value, "/") {
		return false
	}

	return !strings.HasPrefix(value, a.routePrefix)
}

// parseHTML parses a full document or a fragment.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

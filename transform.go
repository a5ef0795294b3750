package staticpages

// RuleMatch records how many occurrences a rule replaced on one page.
type RuleMatch struct {
	Rule  string
	Count int
}

// Result is the outcome of transforming one page.
type Result struct {
	Content string
	Matches []RuleMatch // One entry per rule, in application order
}

// Unmatched returns the names of rules that replaced nothing.
func (r *Result) Unmatched() []string {
	var names []string
	for _, m := range r.Matches {
		if m.Count == 0 {
			names = append(names, m.Rule)
		}
	}
	return names
}

// Replaced returns the total number of replacements across all rules.
func (r *Result) Replaced() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Count
	}
	return total
}

// pageTransformer defines the contract for the page rewrite pipeline.
type pageTransformer interface {
	Transform(page, css string) *Result
}

// Compile-time interface implementation check.
var _ pageTransformer = (*Transformer)(nil)

// Transformer rewrites local pages into production page bodies.
// It holds no mutable state and is safe for concurrent use.
type Transformer struct {
	site Site
}

// NewTransformer creates a Transformer for site.
// The site is copied; later changes to the caller's slices have no effect.
func NewTransformer(site Site) *Transformer {
	site.Pages = append([]string(nil), site.Pages...)
	site.Images = append([]string(nil), site.Images...)
	site.IDLinkPages = append([]string(nil), site.IDLinkPages...)
	return &Transformer{site: site}
}

// Transform applies the ordered rules to page, inlining css verbatim.
// Markers absent from the page leave it unchanged for that rule.
func (t *Transformer) Transform(page, css string) *Result {
	rules := buildRules(t.site, css)
	res := &Result{Matches: make([]RuleMatch, 0, len(rules))}

	for _, rule := range rules {
		var n int
		page, n = rule.Apply(page)
		res.Matches = append(res.Matches, RuleMatch{Rule: rule.Name, Count: n})
	}

	res.Content = page
	return res
}

// Rules returns the ordered rules the transformer applies with css inlined.
func (t *Transformer) Rules(css string) []Rule {
	return buildRules(t.site, css)
}

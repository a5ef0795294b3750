package staticpages

import "strings"

// Rule names, in application order.
const (
	RuleInlineStylesheet = "inline-stylesheet"
	RuleInlineConfig     = "inline-config"
	RuleStorageImages    = "storage-images"
	RuleIDLinksToHash    = "id-links-to-hash"
	RulePageLinks        = "page-links"
	RuleParamsFromHash   = "params-from-hash"
	RuleHistoryState     = "history-state"
)

// Literal code fragments rewritten by the params and history rules.
const (
	searchParamsRead = "URLSearchParams(location.search)"
	hashParamsRead   = "URLSearchParams(location.hash.substring(1))"

	// applyFilters: qs ? '?' + qs : location.pathname
	historyWithFilters     = "history.replaceState(null, '', qs ? '?' + qs : location.pathname)"
	historyWithFiltersHash = "history.replaceState(null, '', location.pathname + location.search + (qs ? '#' + qs : ''))"

	// clearFilters: location.pathname only
	historyCleared      = "history.replaceState(null, '', location.pathname)"
	historyClearedQuery = "history.replaceState(null, '', location.pathname + location.search)"
)

// Replacement is one literal substitution.
type Replacement struct {
	Old string
	New string
}

// Rule is a named, ordered group of literal substitutions.
// Replacements run in order, each on the output of the previous one.
type Rule struct {
	Name         string
	Replacements []Replacement
}

// Apply runs every replacement and returns the new text and the number of
// occurrences replaced. A rule that matches nothing returns text unchanged.
func (r Rule) Apply(text string) (string, int) {
	total := 0
	for _, rep := range r.Replacements {
		if rep.Old == "" {
			continue
		}
		n := strings.Count(text, rep.Old)
		if n == 0 {
			continue
		}
		text = strings.ReplaceAll(text, rep.Old, rep.New)
		total += n
	}
	return text, total
}

// stylesheetMarker returns the external stylesheet link tag for name.
func stylesheetMarker(name string) string {
	return `<link rel="stylesheet" href="` + name + `">`
}

// configScriptMarker returns the external configuration script tag for name.
func configScriptMarker(name string) string {
	return `<script src="` + name + `"></script>`
}

// inlineConfigBlock renders the credentials as an inline script.
func inlineConfigBlock(c Credentials) string {
	return "<script>\n" +
		"    const SUPABASE_URL = '" + c.URL + "';\n" +
		"    const SUPABASE_ANON_KEY = '" + c.AnonKey + "';\n" +
		"  </script>"
}

// pageRoute returns the dynamic route URL for page, without fragment.
func pageRoute(route, page string) string {
	return route + "?page=" + page
}

// buildRules returns the ordered rule list for site with css inlined.
// The id-link rule must precede the page-link rule: the page-link rule only
// knows bare href values and would leave "?id=" query strings behind.
func buildRules(site Site, css string) []Rule {
	storage := site.StorageBase()

	images := make([]Replacement, 0, 2*len(site.Images))
	for _, img := range site.Images {
		images = append(images,
			Replacement{Old: `src="` + img + `"`, New: `src="` + storage + "/" + img + `"`},
			Replacement{Old: `href="` + img + `"`, New: `href="` + storage + "/" + img + `"`},
		)
	}

	idLinks := make([]Replacement, 0, len(site.IDLinkPages))
	for _, page := range site.IDLinkPages {
		idLinks = append(idLinks, Replacement{
			Old: page + "?id=",
			New: pageRoute(site.Route, page) + "#id=",
		})
	}

	pageLinks := make([]Replacement, 0, len(site.Pages))
	for _, page := range site.Pages {
		pageLinks = append(pageLinks, Replacement{
			Old: `href="` + page + `"`,
			New: `href="` + pageRoute(site.Route, page) + `"`,
		})
	}

	return []Rule{
		{
			Name: RuleInlineStylesheet,
			Replacements: []Replacement{{
				Old: stylesheetMarker(site.Stylesheet),
				New: "<style>\n" + css + "\n</style>",
			}},
		},
		{
			Name: RuleInlineConfig,
			Replacements: []Replacement{{
				Old: configScriptMarker(site.ConfigScript),
				New: inlineConfigBlock(site.Credentials),
			}},
		},
		{Name: RuleStorageImages, Replacements: images},
		{Name: RuleIDLinksToHash, Replacements: idLinks},
		{Name: RulePageLinks, Replacements: pageLinks},
		{
			Name:         RuleParamsFromHash,
			Replacements: []Replacement{{Old: searchParamsRead, New: hashParamsRead}},
		},
		{
			// Neither rewritten call contains historyCleared, so the second
			// replacement never touches the output of the first.
			Name: RuleHistoryState,
			Replacements: []Replacement{
				{Old: historyWithFilters, New: historyWithFiltersHash},
				{Old: historyCleared, New: historyClearedQuery},
			},
		},
	}
}

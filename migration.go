package staticpages

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Migration defaults.
const (
	DefaultTable     = "static_pages"
	DefaultDelimiter = "$page$"

	bannerRule = "-- ============================================================"
)

// Precompiled patterns for migration option validation.
var (
	// PostgreSQL dollar-quote tag: $$ or $tag$ where tag is an identifier.
	dollarTagPattern = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)?\$$`)

	// Optionally schema-qualified, unquoted identifier.
	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
)

// ProducedPage is a transformed page ready for embedding.
type ProducedPage struct {
	Name    string
	Content string
	Matches []RuleMatch
}

// migration renders the SQL document for a list of produced pages.
type migration struct {
	table     string
	delimiter string
	preamble  []string
}

// validateDelimiter checks that d is a usable dollar-quote tag.
func validateDelimiter(d string) error {
	if !dollarTagPattern.MatchString(d) {
		return fmt.Errorf("%w: %q (want $tag$)", ErrInvalidDelimiter, d)
	}
	return nil
}

// validateTable checks that name is a plain SQL identifier.
func validateTable(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}

// defaultPreamble describes the generated migration in SQL comments.
func defaultPreamble(site Site, table string) []string {
	return []string{
		"Migration: Update " + table + " with generated page bodies",
		"Pages: " + strings.Join(site.Pages, ", "),
		"Transformations: CSS inlined, " + site.ConfigScript + " inlined, image URLs rewritten,",
		"inter-page links use " + site.Route + "?page= format, params use hash fragments.",
	}
}

// checkDelimiter reports a collision between content and the quoting tag.
// The closing tag must first appear right after content: a body ending in a
// prefix of the tag (e.g. "$" with "$$") would also end the string early.
func (m *migration) checkDelimiter(name, content string) error {
	if strings.Contains(content, m.delimiter) {
		return fmt.Errorf("%w: %s contains %s", ErrDelimiterCollision, name, m.delimiter)
	}
	if strings.Index(content+m.delimiter, m.delimiter) != len(content) {
		return fmt.Errorf("%w: %s ends with part of %s", ErrDelimiterCollision, name, m.delimiter)
	}
	return nil
}

// write renders the document: preamble, DELETE, then one INSERT per page.
// Every line, including the last, ends with a newline.
func (m *migration) write(w io.Writer, pages []ProducedPage) error {
	for _, p := range pages {
		if err := m.checkDelimiter(p.Name, p.Content); err != nil {
			return err
		}
	}

	var b strings.Builder

	for _, line := range m.preamble {
		b.WriteString(commentLine(line))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "DELETE FROM %s;\n\n", m.table)

	for _, p := range pages {
		b.WriteString(bannerRule + "\n")
		b.WriteString("-- " + p.Name + "\n")
		b.WriteString(bannerRule + "\n")
		fmt.Fprintf(&b, "INSERT INTO %s (path, content) VALUES ('%s', %s%s%s);\n\n",
			m.table, quoteLiteral(p.Name), m.delimiter, p.Content, m.delimiter)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// commentLine prefixes line with "-- " unless it is already a comment.
func commentLine(line string) string {
	if strings.HasPrefix(line, "--") {
		return line
	}
	if line == "" {
		return "--"
	}
	return "-- " + line
}

// quoteLiteral escapes s for a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

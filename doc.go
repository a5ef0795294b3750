// Package staticpages turns locally developed HTML pages into a SQL
// migration that upserts them into a static_pages table.
//
// # Quick Start
//
// Describe the site, create an emitter, and emit the migration:
//
//	src := os.DirFS("www").(fs.ReadFileFS)
//
//	em, err := staticpages.NewEmitter(staticpages.DefaultSite())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sql, err := em.Emit(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(sql)
//
// # Transformation Pipeline
//
// Every page goes through the same ordered literal substitutions:
//
//  1. Stylesheet link replaced by an inline <style> block
//  2. Configuration script replaced by inline credentials
//  3. Icon src/href rewritten to the public storage bucket
//  4. "detail.html?id=" style links moved to "www?page=detail.html#id="
//  5. Bare href="page.html" links rewritten to href="www?page=page.html"
//  6. URLSearchParams(location.search) reads moved to the hash fragment
//  7. history.replaceState calls keep ?page= and store filters after #
//
// Order matters: step 4 must run before step 5, otherwise id links would
// keep their query string behind the routing prefix. Rules that match
// nothing are silent no-ops; use WithReporter and Result.Unmatched to
// detect them.
//
// # Migration Document
//
// The document starts with a comment preamble and a DELETE of the whole
// table, followed by one INSERT per page in enumeration order. Page bodies
// are dollar-quoted ($page$ by default). A page whose produced body contains
// the delimiter aborts the whole emission with ErrDelimiterCollision: no
// partial migration is ever returned.
//
// # Configuration
//
// Credentials, page list and marker names are part of Site and are passed
// explicitly, so environment-specific builds only differ by configuration:
//
//	site := staticpages.DefaultSite()
//	site.Credentials = staticpages.Credentials{
//	    URL:     "https://staging.supabase.co",
//	    AnonKey: stagingKey,
//	}
//	em, err := staticpages.NewEmitter(site,
//	    staticpages.WithDelimiter("$body$"),
//	    staticpages.WithWorkers(4),
//	)
package staticpages

// Package assets reads the raw pages and the shared stylesheet of a site
// from a flat directory on disk.
//
// Only bare file names such as "index.html" or "style.css" are accepted.
// FilesystemLoader resolves symlinks and refuses to read anything that ends
// up outside the site directory.
package assets

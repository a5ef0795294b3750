// Package preview serves generated pages locally the way the deployed
// dynamic route does: pages live in a static_pages table and are returned
// by GET /www?page=<name>, with index.html as the default page.
//
// The table is SQLite (modernc.org/sqlite) and is filled with Store.Replace,
// which mirrors the migration's DELETE + INSERT semantics in one
// transaction.
package preview

// Package migrations embeds the SQL schema applied by `bookkeeper migrate`
// and loaded into the integration test database.
package migrations

import "embed"

// FS holds every *.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS

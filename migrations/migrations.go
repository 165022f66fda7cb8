// Package migrations embeds the SQL schema migrations applied by the
// billing server on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

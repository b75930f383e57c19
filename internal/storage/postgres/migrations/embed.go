// Package migrations embeds the goose schema migrations for the
// PostgreSQL storage backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Package migrations embeds the SQL migration files shipped with the
// application.
package migrations

import "embed"

//go:embed sqlite
var FS embed.FS

package arogyabot

import "embed"

// MigrationsFS holds the embedded database migrations.
//
//go:embed migrations
var MigrationsFS embed.FS

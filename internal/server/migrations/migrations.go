// Package migrations embeds the goose migration sets, one directory per
// supported SQL dialect. Timestamps are stored as fixed-width UTC text
// (models.TimeFormat) so they sort correctly in both engines.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS

// Package migrations embeds the epoch_runs schema for every supported dialect.
package migrations

import "embed"

//go:embed postgres mysql sqllite3
var FS embed.FS

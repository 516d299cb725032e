// Package migrations embeds the goose SQL migrations so the binary and the
// test helpers can apply them without knowing the repository layout.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

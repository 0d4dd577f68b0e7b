// Package migrations встраивает SQL миграции схемы в бинарник,
// чтобы cmd/migrate не зависел от файлов на диске.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

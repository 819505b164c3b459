package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies every schema file in lexical order. The files are idempotent.
func Migrate(ctx context.Context, conn DBTX) error {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("schemaFS.ReadFile[%s]: %w", name, err)
		}

		if _, err := conn.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("conn.Exec[%s]: %w", name, err)
		}
	}

	return nil
}

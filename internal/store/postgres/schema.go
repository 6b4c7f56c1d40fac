package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the HabitSphere tables if they do not exist.
// Deployments run migrations out of band; this is used by local setups and
// the integration test harness.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func splitStatements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	var out []string
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" || strings.HasPrefix(stmt, "--") && !strings.Contains(stmt, "\n") {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

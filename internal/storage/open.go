package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyplan/internal/storage/postgres"
	"github.com/julianstephens/studyplan/internal/storage/sqlite"
)

// Open picks a backend from target: a PostgreSQL connection string, a .json
// file for the JSON store, or any other path for SQLite. The returned provider
// still needs Init or Load.
func Open(target string) (Provider, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("no database configured")
	}

	if postgres.IsConnString(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	}

	if strings.HasSuffix(strings.ToLower(target), ".json") {
		return NewJSONStore(target), nil
	}
	return sqlite.NewStore(target), nil
}

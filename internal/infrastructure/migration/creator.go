package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// MigrationFile describes one created up/down pair
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

const fileHeader = "-- %s migration %s_%s\n-- %s\n\n"

var invalidNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

// CreateMigration writes an empty up/down migration pair under dir, named
// <timestamp>_<name>.{up,down}.sql, e.g. 20260831120000_add_finance_items.up.sql
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	cleaned := sanitizeName(name)
	if cleaned == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	mf := &MigrationFile{
		Version:  version,
		Name:     cleaned,
		UpPath:   filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, cleaned)),
		DownPath: filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, cleaned)),
	}

	if description == "" {
		description = "No description"
	}
	up := fmt.Sprintf(fileHeader, "Up", version, cleaned, description)
	down := fmt.Sprintf(fileHeader, "Down", version, cleaned, description)
	if err := os.WriteFile(mf.UpPath, []byte(up), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(mf.DownPath, []byte(down), 0o644); err != nil {
		return nil, err
	}
	return mf, nil
}

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = invalidNameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// ListMigrations returns the migration filenames under dir, sorted by version
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const schemaMigrationsTable = "schema_migrations"

var addColumnPattern = regexp.MustCompile(`(?is)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+(?:COLUMN\s+)?(\S+)`)

// migrationFile is one NNN_name.sql file. Version keeps the zero padding of
// the file name and is what schema_migrations records.
type migrationFile struct {
	Version string
	Name    string
	SQL     string
	number  int
}

func (migration migrationFile) statements() []string {
	statements := []string{}
	for part := range strings.SplitSeq(migration.SQL, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// applyMigrations brings database up to the newest file in files. Each
// pending migration runs in its own transaction together with its
// schema_migrations row.
func applyMigrations(database *gorm.DB, files fs.FS, logger *logrus.Logger) error {
	if err := database.Exec(`CREATE TABLE IF NOT EXISTS ` + schemaMigrationsTable + ` (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create %s: %w", schemaMigrationsTable, err)
	}

	pending, err := pendingMigrations(database, files)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, migration)
		}); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"version": migration.Version,
			"name":    migration.Name,
		}).Info("applied schema migration")
	}
	return nil
}

func pendingMigrations(database *gorm.DB, files fs.FS) ([]migrationFile, error) {
	all, err := loadMigrationFiles(files)
	if err != nil {
		return nil, err
	}

	var applied []string
	if err := database.Table(schemaMigrationsTable).Pluck("version", &applied).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", schemaMigrationsTable, err)
	}

	return slices.DeleteFunc(all, func(migration migrationFile) bool {
		return slices.Contains(applied, migration.Version)
	}), nil
}

// loadMigrationFiles reads every NNN_name.sql at the root of files, ordered
// by numeric version. Other files are ignored.
func loadMigrationFiles(files fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := []migrationFile{}
	byVersion := map[string]string{}
	for _, entry := range entries {
		name := entry.Name()
		version, ok := migrationVersion(name)
		if entry.IsDir() || !ok {
			continue
		}
		if other, taken := byVersion[version]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, other, name)
		}
		byVersion[version] = name

		number, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: version %q: %w", name, version, err)
		}
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migrationFile{
			Version: version,
			Name:    name,
			SQL:     string(content),
			number:  number,
		})
	}

	slices.SortFunc(migrations, func(a, b migrationFile) int {
		return cmp.Or(cmp.Compare(a.number, b.number), strings.Compare(a.Name, b.Name))
	})
	return migrations, nil
}

func migrationVersion(fileName string) (string, bool) {
	if path.Ext(fileName) != ".sql" {
		return "", false
	}
	version, _, found := strings.Cut(fileName, "_")
	if !found || version == "" {
		return "", false
	}
	for _, char := range version {
		if char < '0' || char > '9' {
			return "", false
		}
	}
	return version, true
}

func runMigration(tx *gorm.DB, migration migrationFile) error {
	statements := migration.statements()
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no statements", migration.Name)
	}

	for _, statement := range statements {
		exists, err := addsExistingColumn(tx, statement)
		if err != nil {
			return fmt.Errorf("migration %s: %w", migration.Name, err)
		}
		if exists {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("migration %s: %q: %w", migration.Name, statement, err)
		}
	}

	record := map[string]any{"version": migration.Version, "name": migration.Name}
	if err := tx.Table(schemaMigrationsTable).Create(record).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Name, err)
	}
	return nil
}

// addsExistingColumn reports whether statement is an ADD COLUMN for a column
// the table already has, as on databases patched by hand.
func addsExistingColumn(tx *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false, nil
	}
	table, column := unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2])

	rows, err := tx.Table(table).Limit(1).Rows()
	if err != nil {
		return false, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return false, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	return slices.ContainsFunc(columns, func(existing string) bool {
		return strings.EqualFold(existing, column)
	}), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(identifier, "\"`[]")
}

package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealflow/internal/links"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite seed database at path and
// ensures its schema exists
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (required for CASCADE deletions)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		slog.Error("Failed to enable foreign keys", "error", err)
		closeDB(db)
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := Migrate(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}

// Migrate creates the seed schema if it does not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin', 'user'))
		)`,
		`CREATE TABLE IF NOT EXISTS pipelines (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			owner_user_id TEXT NOT NULL,
			is_public INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pipeline_permissions (
			pipeline_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			access_level TEXT NOT NULL CHECK (access_level IN ('none', 'read', 'full')),
			position INTEGER NOT NULL,
			FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS columns (
			pipeline_id TEXT NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (pipeline_id, id),
			FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			pipeline_id TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (pipeline_id, id),
			FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS column_companies (
			pipeline_id TEXT NOT NULL,
			column_id TEXT NOT NULL,
			company_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY (pipeline_id, column_id) REFERENCES columns(pipeline_id, id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_column_companies_column
			ON column_companies(pipeline_id, column_id, position)`,
		`CREATE TABLE IF NOT EXISTS links (
			copy_id TEXT PRIMARY KEY,
			original_id TEXT NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite reads a seed from a migrated database. Pipelines keep their
// stored position; permissions, columns and column entries keep theirs.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Seed, error) {
	var s Seed

	users, err := loadUsers(ctx, db)
	if err != nil {
		return nil, err
	}
	s.Users = users

	pipelines, err := loadPipelines(ctx, db)
	if err != nil {
		return nil, err
	}
	byID := make(map[types.PipelineID]*models.Pipeline, len(pipelines))
	for _, p := range pipelines {
		byID[p.ID] = p
	}
	s.Pipelines = pipelines

	if err := loadPermissions(ctx, db, byID); err != nil {
		return nil, err
	}
	if err := loadColumns(ctx, db, byID); err != nil {
		return nil, err
	}
	if err := loadCompanies(ctx, db, byID); err != nil {
		return nil, err
	}
	if err := loadColumnEntries(ctx, db, byID); err != nil {
		return nil, err
	}

	s.Links, err = loadLinks(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func loadUsers(ctx context.Context, db *sql.DB) ([]models.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, role FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func loadPipelines(ctx context.Context, db *sql.DB) ([]*models.Pipeline, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, owner_user_id, is_public
		FROM pipelines
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipelines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*models.Pipeline
	for rows.Next() {
		p := &models.Pipeline{
			Companies: map[types.CompanyID]models.Company{},
			Columns:   map[types.ColumnID]models.Column{},
		}
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerUserID, &p.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadPermissions(ctx context.Context, db *sql.DB, byID map[types.PipelineID]*models.Pipeline) error {
	rows, err := db.QueryContext(ctx, `
		SELECT pipeline_id, user_id, access_level
		FROM pipeline_permissions
		ORDER BY pipeline_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query permissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var pid types.PipelineID
		var perm models.Permission
		var level string
		if err := rows.Scan(&pid, &perm.UserID, &level); err != nil {
			return fmt.Errorf("failed to scan permission: %w", err)
		}
		perm.AccessLevel, err = models.ParseAccessLevel(level)
		if err != nil {
			return fmt.Errorf("%w: pipeline %s: %w", ErrInvalidSeed, pid, err)
		}
		p, ok := byID[pid]
		if !ok {
			return fmt.Errorf("%w: permission for unknown pipeline %s", ErrInvalidSeed, pid)
		}
		p.Permissions = append(p.Permissions, perm)
	}
	return rows.Err()
}

func loadColumns(ctx context.Context, db *sql.DB, byID map[types.PipelineID]*models.Pipeline) error {
	rows, err := db.QueryContext(ctx, `
		SELECT pipeline_id, id, title
		FROM columns
		ORDER BY pipeline_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var pid types.PipelineID
		var col models.Column
		if err := rows.Scan(&pid, &col.ID, &col.Title); err != nil {
			return fmt.Errorf("failed to scan column: %w", err)
		}
		p, ok := byID[pid]
		if !ok {
			return fmt.Errorf("%w: column for unknown pipeline %s", ErrInvalidSeed, pid)
		}
		col.CompanyIDs = []types.CompanyID{}
		p.Columns[col.ID] = col
		p.ColumnOrder = append(p.ColumnOrder, col.ID)
	}
	return rows.Err()
}

func loadCompanies(ctx context.Context, db *sql.DB, byID map[types.PipelineID]*models.Pipeline) error {
	rows, err := db.QueryContext(ctx, `
		SELECT pipeline_id, id, name, description, notes
		FROM companies
		ORDER BY pipeline_id, id
	`)
	if err != nil {
		return fmt.Errorf("failed to query companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var pid types.PipelineID
		var c models.Company
		if err := rows.Scan(&pid, &c.ID, &c.Name, &c.Description, &c.Notes); err != nil {
			return fmt.Errorf("failed to scan company: %w", err)
		}
		p, ok := byID[pid]
		if !ok {
			return fmt.Errorf("%w: company for unknown pipeline %s", ErrInvalidSeed, pid)
		}
		p.Companies[c.ID] = c
	}
	return rows.Err()
}

func loadColumnEntries(ctx context.Context, db *sql.DB, byID map[types.PipelineID]*models.Pipeline) error {
	rows, err := db.QueryContext(ctx, `
		SELECT pipeline_id, column_id, company_id
		FROM column_companies
		ORDER BY pipeline_id, column_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query column entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var pid types.PipelineID
		var colID types.ColumnID
		var companyID types.CompanyID
		if err := rows.Scan(&pid, &colID, &companyID); err != nil {
			return fmt.Errorf("failed to scan column entry: %w", err)
		}
		p, ok := byID[pid]
		if !ok {
			return fmt.Errorf("%w: column entry for unknown pipeline %s", ErrInvalidSeed, pid)
		}
		col, ok := p.Columns[colID]
		if !ok {
			return fmt.Errorf("%w: entry for unknown column %s/%s", ErrInvalidSeed, pid, colID)
		}
		col.CompanyIDs = append(col.CompanyIDs, companyID)
		p.Columns[colID] = col
	}
	return rows.Err()
}

func loadLinks(ctx context.Context, db *sql.DB) ([]links.Link, error) {
	rows, err := db.QueryContext(ctx, `SELECT copy_id, original_id FROM links ORDER BY copy_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []links.Link
	for rows.Next() {
		var l links.Link
		if err := rows.Scan(&l.CopyID, &l.OriginalID); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// WriteSQLite replaces the contents of a migrated database with s in one
// transaction
func WriteSQLite(ctx context.Context, db *sql.DB, s *Seed) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("failed to rollback seed write", "error", rbErr)
			}
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM column_companies`,
		`DELETE FROM companies`,
		`DELETE FROM columns`,
		`DELETE FROM pipeline_permissions`,
		`DELETE FROM pipelines`,
		`DELETE FROM users`,
		`DELETE FROM links`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear seed tables: %w", err)
		}
	}

	for _, u := range s.Users {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, name, role) VALUES (?, ?, ?)`,
			u.ID, u.Name, string(u.Role)); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}

	for pos, p := range s.Pipelines {
		if err = writePipeline(ctx, tx, pos, p); err != nil {
			return err
		}
	}

	for _, l := range s.Links {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO links (copy_id, original_id) VALUES (?, ?)`,
			l.CopyID, l.OriginalID); err != nil {
			return fmt.Errorf("failed to insert link %s: %w", l.CopyID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func writePipeline(ctx context.Context, tx *sql.Tx, pos int, p *models.Pipeline) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pipelines (id, name, owner_user_id, is_public, position) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.OwnerUserID, p.IsPublic, pos); err != nil {
		return fmt.Errorf("failed to insert pipeline %s: %w", p.ID, err)
	}

	for i, perm := range p.Permissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pipeline_permissions (pipeline_id, user_id, access_level, position) VALUES (?, ?, ?, ?)`,
			p.ID, perm.UserID, perm.AccessLevel.String(), i); err != nil {
			return fmt.Errorf("failed to insert permission on %s: %w", p.ID, err)
		}
	}

	for _, c := range p.Companies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO companies (pipeline_id, id, name, description, notes) VALUES (?, ?, ?, ?, ?)`,
			p.ID, c.ID, c.Name, c.Description, c.Notes); err != nil {
			return fmt.Errorf("failed to insert company %s: %w", c.ID, err)
		}
	}

	for i, colID := range p.ColumnOrder {
		col, ok := p.Columns[colID]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (pipeline_id, id, title, position) VALUES (?, ?, ?, ?)`,
			p.ID, col.ID, col.Title, i); err != nil {
			return fmt.Errorf("failed to insert column %s: %w", col.ID, err)
		}
		for j, companyID := range col.CompanyIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO column_companies (pipeline_id, column_id, company_id, position) VALUES (?, ?, ?, ?)`,
				p.ID, col.ID, companyID, j); err != nil {
				return fmt.Errorf("failed to insert column entry %s: %w", companyID, err)
			}
		}
	}
	return nil
}

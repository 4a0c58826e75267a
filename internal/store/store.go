// Package store persists the project list shown on the home screen.
package store

import (
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"seeker/internal/errors"
	"seeker/internal/log"
)

//go:embed db/schema.sql
var dbFS embed.FS

// Project is a directory the user opened through the file dialog.
type Project struct {
	ID        string
	Name      string
	Path      string
	CreatedAt time.Time
}

// Repository is the project list storage.
type Repository interface {
	Insert(p Project) (Project, error)
	SelectAll() ([]Project, error)
	FindByPath(path string) (*Project, error)
	Record(path string) (Project, error)
	Close() error
}

// SQLiteRepository implements Repository on SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. An empty path opens
// an in-memory database.
func Open(path string) (*SQLiteRepository, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.FromOS("failed to create database directory", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to open SQLite database", err).
			WithKind(errors.DatabaseConnectionFailed).
			WithContext("dsn", dsn)
	}
	// one connection keeps an in-memory database alive and shared
	db.SetMaxOpenConns(1)

	schema, err := dbFS.ReadFile("db/schema.sql")
	if err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to read schema SQL", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to initialize database schema", err).
			WithKind(errors.DatabaseConnectionFailed).
			WithContext("dsn", dsn)
	}

	log.LogWithFields(log.F("path", dsn)).Debug("project database ready")
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Insert stores p, assigning an id and creation time when missing.
func (r *SQLiteRepository) Insert(p Project) (Project, error) {
	if strings.TrimSpace(p.Path) == "" {
		return Project{}, errors.NewInvalidInputError("project path is empty", nil)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}
	if p.Name == "" {
		p.Name = filepath.Base(p.Path)
	}

	_, err := r.db.Exec(
		`INSERT INTO project (id, project_name, path, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Path, p.CreatedAt,
	)
	if err != nil {
		return Project{}, errors.NewDatabaseError("failed to insert project", err).
			WithOperation("insert").
			WithContext("path", p.Path)
	}
	return p, nil
}

// SelectAll returns every project, most recent first.
func (r *SQLiteRepository) SelectAll() ([]Project, error) {
	rows, err := r.db.Query(
		`SELECT id, project_name, path, created_at FROM project ORDER BY created_at DESC, project_name`)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query projects", err).
			WithKind(errors.DatabaseQueryFailed).
			WithOperation("select_all")
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Path, &p.CreatedAt); err != nil {
			return nil, errors.NewDatabaseError("failed to scan project", err).
				WithKind(errors.DatabaseQueryFailed).
				WithOperation("select_all")
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("failed to iterate projects", err).
			WithKind(errors.DatabaseQueryFailed).
			WithOperation("select_all")
	}
	return projects, nil
}

// FindByPath returns the project stored for path, or nil.
func (r *SQLiteRepository) FindByPath(path string) (*Project, error) {
	var p Project
	err := r.db.QueryRow(
		`SELECT id, project_name, path, created_at FROM project WHERE path = ?`, path,
	).Scan(&p.ID, &p.Name, &p.Path, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find project", err).
			WithKind(errors.DatabaseQueryFailed).
			WithOperation("find_by_path").
			WithContext("path", path)
	}
	return &p, nil
}

// Record returns the project for path, inserting it first if it is new.
// The project is named after the last path element.
func (r *SQLiteRepository) Record(path string) (Project, error) {
	path = filepath.Clean(path)
	existing, err := r.FindByPath(path)
	if err != nil {
		return Project{}, err
	}
	if existing != nil {
		return *existing, nil
	}
	p, err := r.Insert(Project{Path: path})
	if err != nil {
		return Project{}, err
	}
	log.LogWithFields(log.F("path", p.Path), log.F("id", p.ID)).Info("project recorded")
	return p, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Package repo is the Postgres persistence layer: user accounts for the API
// and saved sizing projects. A project document is the caller's JSON, stored
// opaquely; the engine defines no file format of its own.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ansel1/merry"
)

var ErrNotFound = merry.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)

	SaveProject(ctx context.Context, userID int, name string, document json.RawMessage) (int, error)
	LoadProject(ctx context.Context, userID int, name string) (json.RawMessage, error)
	ListProjects(ctx context.Context, userID int) ([]ProjectInfo, error)
	DeleteProject(ctx context.Context, userID int, name string) error
}

type ProjectInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	query := "SELECT id, password FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

// SaveProject upserts by (user, name): saving under an existing name
// replaces the document, matching how engineers iterate on a design.
func (r *PostgresRepository) SaveProject(ctx context.Context, userID int, name string, document json.RawMessage) (int, error) {
	var id int
	query := `INSERT INTO projects (user_id, name, document, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, name)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID, name, []byte(document)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) LoadProject(ctx context.Context, userID int, name string) (json.RawMessage, error) {
	var document []byte
	query := "SELECT document FROM projects WHERE user_id=$1 AND name=$2"
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, merry.Appendf(ErrNotFound, "project %q", name)
	}
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (r *PostgresRepository) ListProjects(ctx context.Context, userID int) ([]ProjectInfo, error) {
	query := "SELECT id, name FROM projects WHERE user_id=$1 ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectInfo
	for rows.Next() {
		var p ProjectInfo
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, userID int, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE user_id=$1 AND name=$2", userID, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return merry.Appendf(ErrNotFound, "project %q", name)
	}
	return nil
}

package applied

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/segmentio/ksuid"
)

// ErrDuplicate is returned when an applicant already has an application for
// the same job. The applied_job (email, job_id) unique index raises it even
// when two submissions race past the handler's existence check.
var ErrDuplicate = errors.New("application already exists for this job")

const uniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) Create(ctx context.Context, rq *ApplyRq) (*Application, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return nil, err
	}
	app := &Application{
		ID:        id.String(),
		JobID:     rq.JobID,
		Email:     rq.Email,
		Category:  rq.Category,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO applied_job (id, job_id, email, category, created_at) VALUES ($1, $2, $3, $4, $5)`,
		app.ID,
		app.JobID,
		app.Email,
		app.Category,
		app.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return app, nil
}

func (r *Repository) Exists(ctx context.Context, email, jobID string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applied_job WHERE email = $1 AND job_id = $2)`, email, jobID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) All(ctx context.Context) ([]Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, email, category, created_at FROM applied_job ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return []Application{}, err
	}
	return collect(rows)
}

// ByApplicant returns the applicant's applications, optionally narrowed to a
// single category.
func (r *Repository) ByApplicant(ctx context.Context, email, category string) ([]Application, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, job_id, email, category, created_at FROM applied_job WHERE email = $1 ORDER BY created_at ASC, id ASC`, email)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, job_id, email, category, created_at FROM applied_job WHERE email = $1 AND category = $2 ORDER BY created_at ASC, id ASC`, email, category)
	}
	if err != nil {
		return []Application{}, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Application, error) {
	defer rows.Close()
	all := []Application{}
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.Email, &app.Category, &app.CreatedAt); err != nil {
			return all, err
		}
		all = append(all, app)
	}
	if err := rows.Err(); err != nil {
		return all, err
	}
	return all, nil
}

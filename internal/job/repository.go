package job

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/segmentio/ksuid"

	"github.com/jobseekhq/job-portal/internal/pagination"
)

const jobColumns = `id, job_title, description, category, location, deadline, posted_by, applicants, status, slug, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func scanJob(s interface{ Scan(...interface{}) error }) (*JobPost, error) {
	job := &JobPost{}
	err := s.Scan(
		&job.ID,
		&job.JobTitle,
		&job.Description,
		&job.Category,
		&job.Location,
		&job.Deadline,
		&job.PostedBy,
		&job.Applicants,
		&job.Status,
		&job.Slug,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *Repository) collect(rows *sql.Rows) ([]*JobPost, error) {
	defer rows.Close()
	jobs := []*JobPost{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return jobs, err
	}
	return jobs, nil
}

func (r *Repository) All(ctx context.Context) ([]*JobPost, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM job ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return []*JobPost{}, err
	}
	return r.collect(rows)
}

func (r *Repository) ByID(ctx context.Context, id string) (*JobPost, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM job WHERE id = $1`, id)
	return scanJob(row)
}

func (r *Repository) Create(ctx context.Context, rq *CreateRq) (*JobPost, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	job := &JobPost{
		ID:          id.String(),
		JobTitle:    rq.JobTitle,
		Description: rq.Description,
		Category:    rq.Category,
		Location:    rq.Location,
		Deadline:    rq.Deadline,
		PostedBy:    rq.PostedBy,
		Applicants:  0,
		Status:      "open",
		Slug:        slug.Make(fmt.Sprintf("%s %d", rq.JobTitle, now.Unix())),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO job (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID,
		job.JobTitle,
		job.Description,
		job.Category,
		job.Location,
		job.Deadline,
		job.PostedBy,
		job.Applicants,
		job.Status,
		job.Slug,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// UpdatePartial merges only the supplied fields into the stored row.
func (r *Repository) UpdatePartial(ctx context.Context, id string, rq *UpdateRq) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job SET status = COALESCE($1, status), applicants = COALESCE($2, applicants), updated_at = NOW() WHERE id = $3`,
		rq.Status,
		rq.Applicants,
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Repository) ByPoster(ctx context.Context, email string) ([]*JobPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM job WHERE posted_by = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return []*JobPost{}, err
	}
	return r.collect(rows)
}

func (r *Repository) Featured(ctx context.Context, max int) ([]*JobPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM job ORDER BY applicants DESC, created_at DESC LIMIT $1`, max)
	if err != nil {
		return []*JobPost{}, err
	}
	return r.collect(rows)
}

// ByQuery fetches one window of jobs matching q. The predicate is built by
// Query.whereClause, the same one CountByQuery uses.
func (r *Repository) ByQuery(ctx context.Context, q Query, w pagination.Window) ([]*JobPost, error) {
	where, args := q.whereClause()
	args = append(args, w.Limit(), w.Skip())
	stmt := fmt.Sprintf(`SELECT %s FROM job WHERE %s %s LIMIT $%d OFFSET $%d`,
		jobColumns, where, q.orderClause(), len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return []*JobPost{}, err
	}
	return r.collect(rows)
}

// CountByQuery returns the total number of jobs matching q regardless of
// any pagination window.
func (r *Repository) CountByQuery(ctx context.Context, q Query) (int, error) {
	where, args := q.whereClause()
	row := r.db.QueryRowContext(ctx, `SELECT count(*) AS c FROM job WHERE `+where, args...)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

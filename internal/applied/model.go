package applied

import "time"

// Application records that an applicant applied to a job. Category is a
// denormalized copy of the job's category so the per-applicant listing can
// filter without a join.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Email     string    `json:"email"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplyRq struct {
	JobID    string `json:"job_id"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

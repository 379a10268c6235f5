package job

import "time"

type JobPost struct {
	ID          string    `json:"id"`
	JobTitle    string    `json:"job_title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Deadline    time.Time `json:"deadline"`
	PostedBy    string    `json:"posted_by"`
	Applicants  int       `json:"applicants"`
	Status      string    `json:"status"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRq struct {
	JobTitle    string    `json:"job_title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Deadline    time.Time `json:"deadline"`
	PostedBy    string    `json:"posted_by"`
}

// UpdateRq carries a partial update, nil fields are left untouched.
type UpdateRq struct {
	Status     *string `json:"status"`
	Applicants *int    `json:"applicants"`
}

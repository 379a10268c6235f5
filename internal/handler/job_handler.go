package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jobseekhq/job-portal/internal/job"
	"github.com/jobseekhq/job-portal/internal/middleware"
	"github.com/jobseekhq/job-portal/internal/pagination"
	"github.com/jobseekhq/job-portal/internal/server"
)

const featuredJobsCount = 3

type jobLister interface {
	All(ctx context.Context) ([]*job.JobPost, error)
}

type jobGetter interface {
	ByID(ctx context.Context, id string) (*job.JobPost, error)
}

type jobCreator interface {
	Create(ctx context.Context, rq *job.CreateRq) (*job.JobPost, error)
}

type jobUpdater interface {
	UpdatePartial(ctx context.Context, id string, rq *job.UpdateRq) error
}

type jobDeleter interface {
	Delete(ctx context.Context, id string) error
}

type featuredJobsGetter interface {
	Featured(ctx context.Context, max int) ([]*job.JobPost, error)
}

type posterJobsGetter interface {
	ByPoster(ctx context.Context, email string) ([]*job.JobPost, error)
}

type jobSearcher interface {
	ByQuery(ctx context.Context, q job.Query, w pagination.Window) ([]*job.JobPost, error)
	CountByQuery(ctx context.Context, q job.Query) (int, error)
}

func ListJobsHandler(svr server.Server, jobRepo jobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := jobRepo.All(r.Context())
		if err != nil {
			svr.Log(err, "unable to retrieve jobs")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func JobByIDHandler(svr server.Server, jobRepo jobGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		jobPost, err := jobRepo.ByID(r.Context(), vars["id"])
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve job by id")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, jobPost)
	}
}

func FeaturedJobsHandler(svr server.Server, jobRepo featuredJobsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := jobRepo.Featured(r.Context(), featuredJobsCount)
		if err != nil {
			svr.Log(err, "unable to retrieve featured jobs")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func CreateJobHandler(svr server.Server, jobRepo jobCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := &job.CreateRq{}
		if err := json.NewDecoder(r.Body).Decode(rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if rq.JobTitle == "" || rq.PostedBy == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "job_title and posted_by are required"})
			return
		}
		jobPost, err := jobRepo.Create(r.Context(), rq)
		if err != nil {
			svr.Log(err, "unable to create job")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusCreated, jobPost)
	}
}

func UpdateJobHandler(svr server.Server, jobRepo jobUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		rq := &job.UpdateRq{}
		if err := json.NewDecoder(r.Body).Decode(rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if rq.Applicants != nil && *rq.Applicants < 0 {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "applicants cannot be negative"})
			return
		}
		err := jobRepo.UpdatePartial(r.Context(), vars["id"], rq)
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to update job")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]bool{"updated": true})
	}
}

func DeleteJobHandler(svr server.Server, jobRepo jobDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		err := jobRepo.Delete(r.Context(), vars["id"])
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to delete job")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// JobsByPosterHandler serves a poster's own listings. Authentication is
// enforced by the middleware, here we additionally require the token claim to
// match the requested poster identity.
func JobsByPosterHandler(svr server.Server, jobRepo posterJobsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			return
		}
		vars := mux.Vars(r)
		if claims.Email != vars["email"] {
			svr.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		jobs, err := jobRepo.ByPoster(r.Context(), vars["email"])
		if err != nil {
			svr.Log(err, "unable to retrieve jobs by poster")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func SearchJobsHandler(svr server.Server, jobRepo jobSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window, err := pagination.ParseWindow(r.URL.Query(), svr.GetConfig().JobsPerPage, svr.GetConfig().MaxPageSize)
		if err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "page or size out of range"})
			return
		}
		q := queryFromRequest(r)
		jobs, err := jobRepo.ByQuery(r.Context(), q, window)
		if err != nil {
			svr.Log(err, "unable to retrieve jobs by query")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func JobsCountHandler(svr server.Server, jobRepo jobSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := jobRepo.CountByQuery(r.Context(), queryFromRequest(r))
		if err != nil {
			svr.Log(err, "unable to count jobs by query")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

func queryFromRequest(r *http.Request) job.Query {
	values := r.URL.Query()
	return job.Query{
		Search:   values.Get("search"),
		Category: values.Get("filter"),
		Sort:     values.Get("sort"),
	}
}

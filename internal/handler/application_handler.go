package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobseekhq/job-portal/internal/applied"
	"github.com/jobseekhq/job-portal/internal/middleware"
	"github.com/jobseekhq/job-portal/internal/server"
)

type applicationSubmitter interface {
	Exists(ctx context.Context, email, jobID string) (bool, error)
	Create(ctx context.Context, rq *applied.ApplyRq) (*applied.Application, error)
}

type applicationLister interface {
	All(ctx context.Context) ([]applied.Application, error)
}

type applicantApplicationsGetter interface {
	ByApplicant(ctx context.Context, email, category string) ([]applied.Application, error)
}

// SubmitApplicationHandler rejects a second application for the same
// (email, job) pair. The existence check gives the descriptive message, the
// store's unique index covers concurrent submissions.
func SubmitApplicationHandler(svr server.Server, appRepo applicationSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := &applied.ApplyRq{}
		if err := json.NewDecoder(r.Body).Decode(rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if rq.JobID == "" || rq.Email == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "job_id and email are required"})
			return
		}
		exists, err := appRepo.Exists(r.Context(), rq.Email, rq.JobID)
		if err != nil {
			svr.Log(err, "unable to check for existing application")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		if exists {
			svr.JSON(w, http.StatusConflict, map[string]string{"error": "you have already applied for this job"})
			return
		}
		app, err := appRepo.Create(r.Context(), rq)
		if errors.Is(err, applied.ErrDuplicate) {
			svr.JSON(w, http.StatusConflict, map[string]string{"error": "you have already applied for this job"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to create application")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusCreated, app)
	}
}

func ListApplicationsHandler(svr server.Server, appRepo applicationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := appRepo.All(r.Context())
		if err != nil {
			svr.Log(err, "unable to retrieve applications")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, all)
	}
}

// MyApplicationsHandler serves the applicant's own applications, optionally
// narrowed to a category via the filter query param. The token claim has to
// match the email query param.
func MyApplicationsHandler(svr server.Server, appRepo applicantApplicationsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			return
		}
		email := r.URL.Query().Get("email")
		if claims.Email != email {
			svr.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		apps, err := appRepo.ByApplicant(r.Context(), email, r.URL.Query().Get("filter"))
		if err != nil {
			svr.Log(err, "unable to retrieve applications by applicant")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, apps)
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/jobseekhq/job-portal/internal/applied"
	"github.com/jobseekhq/job-portal/internal/config"
	"github.com/jobseekhq/job-portal/internal/job"
	"github.com/jobseekhq/job-portal/internal/middleware"
	"github.com/jobseekhq/job-portal/internal/pagination"
	"github.com/jobseekhq/job-portal/internal/server"
)

func newTestServer(t *testing.T) (server.Server, *sessions.CookieStore) {
	t.Helper()
	cfg := config.Config{
		Env:           "dev",
		SessionKey:    []byte("test-session-key"),
		JwtSigningKey: []byte("test-signing-key"),
		JobsPerPage:   10,
		MaxPageSize:   100,
	}
	store := sessions.NewCookieStore(cfg.SessionKey)
	// mirror the session options applied at startup in main.go
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(middleware.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Env != "dev",
		SameSite: http.SameSiteLaxMode,
	}
	return server.NewServer(cfg, nil, mux.NewRouter(), store), store
}

func authCookie(t *testing.T, svr server.Server, store *sessions.CookieStore, email string) *http.Cookie {
	t.Helper()
	claims := middleware.UserJWT{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).UTC().Unix(),
			IssuedAt:  time.Now().UTC().Unix(),
		},
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svr.GetJWTSigningKey())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	sess, err := store.Get(r, middleware.SessionName)
	require.NoError(t, err)
	sess.Values["jwt"] = ss
	require.NoError(t, sess.Save(r, w))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

// fakeJobStore applies the same matching and ordering semantics as the SQL
// repository against an in-memory slice.
type fakeJobStore struct {
	jobs  []*job.JobPost
	calls int
}

func (f *fakeJobStore) matching(q job.Query) []*job.JobPost {
	out := []*job.JobPost{}
	for _, j := range f.jobs {
		if !strings.Contains(strings.ToLower(j.JobTitle), strings.ToLower(q.Search)) {
			continue
		}
		if q.Category != "" && j.Category != q.Category {
			continue
		}
		out = append(out, j)
	}
	switch {
	case q.Sort == "":
		// insertion order
	case q.Sort == "asc":
		sort.SliceStable(out, func(i, k int) bool { return out[i].Deadline.Before(out[k].Deadline) })
	default:
		sort.SliceStable(out, func(i, k int) bool { return out[k].Deadline.Before(out[i].Deadline) })
	}
	return out
}

func (f *fakeJobStore) ByQuery(ctx context.Context, q job.Query, w pagination.Window) ([]*job.JobPost, error) {
	f.calls++
	m := f.matching(q)
	if w.Skip() >= len(m) {
		return []*job.JobPost{}, nil
	}
	end := w.Skip() + w.Limit()
	if end > len(m) {
		end = len(m)
	}
	return m[w.Skip():end], nil
}

func (f *fakeJobStore) CountByQuery(ctx context.Context, q job.Query) (int, error) {
	f.calls++
	return len(f.matching(q)), nil
}

func (f *fakeJobStore) ByPoster(ctx context.Context, email string) ([]*job.JobPost, error) {
	f.calls++
	out := []*job.JobPost{}
	for _, j := range f.jobs {
		if j.PostedBy == email {
			out = append(out, j)
		}
	}
	return out, nil
}

// fakeApplicationStore mimics the applied_job table including its
// (email, job_id) unique index.
type fakeApplicationStore struct {
	apps  []applied.Application
	calls int
}

func (f *fakeApplicationStore) Exists(ctx context.Context, email, jobID string) (bool, error) {
	f.calls++
	for _, a := range f.apps {
		if a.Email == email && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationStore) Create(ctx context.Context, rq *applied.ApplyRq) (*applied.Application, error) {
	f.calls++
	for _, a := range f.apps {
		if a.Email == rq.Email && a.JobID == rq.JobID {
			return nil, applied.ErrDuplicate
		}
	}
	app := applied.Application{
		ID:        rq.Email + "/" + rq.JobID,
		JobID:     rq.JobID,
		Email:     rq.Email,
		Category:  rq.Category,
		CreatedAt: time.Now().UTC(),
	}
	f.apps = append(f.apps, app)
	return &app, nil
}

func (f *fakeApplicationStore) All(ctx context.Context) ([]applied.Application, error) {
	f.calls++
	return f.apps, nil
}

func (f *fakeApplicationStore) ByApplicant(ctx context.Context, email, category string) ([]applied.Application, error) {
	f.calls++
	out := []applied.Application{}
	for _, a := range f.apps {
		if a.Email != email {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

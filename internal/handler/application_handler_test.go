package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobseekhq/job-portal/internal/applied"
)

func TestSubmitApplicationDuplicate(t *testing.T) {
	svr, _ := newTestServer(t)
	store := &fakeApplicationStore{}
	h := SubmitApplicationHandler(svr, store)

	body := `{"job_id":"job-1","email":"alice@example.com","category":"IT"}`

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "you have already applied for this job", resp["error"])

	require.Len(t, store.apps, 1)
}

func TestSubmitApplicationSameJobDifferentApplicant(t *testing.T) {
	svr, _ := newTestServer(t)
	store := &fakeApplicationStore{}
	h := SubmitApplicationHandler(svr, store)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/applications",
		strings.NewReader(`{"job_id":"job-1","email":"alice@example.com"}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/applications",
		strings.NewReader(`{"job_id":"job-1","email":"bob@example.com"}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Len(t, store.apps, 2)
}

func TestSubmitApplicationValidation(t *testing.T) {
	svr, _ := newTestServer(t)
	store := &fakeApplicationStore{}
	h := SubmitApplicationHandler(svr, store)

	cases := []struct {
		name string
		body string
	}{
		{"missing job_id", `{"email":"alice@example.com"}`},
		{"missing email", `{"job_id":"job-1"}`},
		{"malformed body", `{"job_id":`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(c.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, store.calls)
		})
	}
}

func TestMyApplicationsAuth(t *testing.T) {
	svr, sessionStore := newTestServer(t)
	store := &fakeApplicationStore{apps: []applied.Application{
		{ID: "a1", JobID: "job-1", Email: "alice@example.com", Category: "IT"},
		{ID: "a2", JobID: "job-2", Email: "alice@example.com", Category: "Sales"},
		{ID: "a3", JobID: "job-1", Email: "bob@example.com", Category: "IT"},
	}}
	h := MyApplicationsHandler(svr, store)

	t.Run("missing cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/applications/mine?email=alice@example.com", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, store.calls)
	})

	t.Run("identity mismatch", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications/mine?email=bob@example.com", nil)
		r.AddCookie(authCookie(t, svr, sessionStore, "alice@example.com"))
		w := httptest.NewRecorder()
		h(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, store.calls)
	})

	t.Run("identity match", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications/mine?email=alice@example.com", nil)
		r.AddCookie(authCookie(t, svr, sessionStore, "alice@example.com"))
		w := httptest.NewRecorder()
		h(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var apps []applied.Application
		require.NoError(t, json.NewDecoder(w.Body).Decode(&apps))
		assert.Len(t, apps, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications/mine?email=alice@example.com&filter=IT", nil)
		r.AddCookie(authCookie(t, svr, sessionStore, "alice@example.com"))
		w := httptest.NewRecorder()
		h(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var apps []applied.Application
		require.NoError(t, json.NewDecoder(w.Body).Decode(&apps))
		require.Len(t, apps, 1)
		assert.Equal(t, "a1", apps[0].ID)
	})
}

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jobseekhq/job-portal/internal/blog"
	"github.com/jobseekhq/job-portal/internal/server"
)

type blogLister interface {
	AllPublished(ctx context.Context) ([]blog.BlogPost, error)
}

type blogGetter interface {
	ByID(ctx context.Context, id string) (blog.BlogPost, error)
}

// ListBlogPostsHandler serves published posts. Blog content is read-only
// here, so the list is cached; job and application reads never are.
func ListBlogPostsHandler(svr server.Server, blogRepo blogLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var posts []blog.BlogPost
		cached, ok := svr.CacheGet(server.CacheKeyBlogPosts)
		if ok {
			dec := gob.NewDecoder(bytes.NewReader(cached))
			if err := dec.Decode(&posts); err == nil {
				svr.JSON(w, http.StatusOK, posts)
				return
			}
		}
		posts, err := blogRepo.AllPublished(r.Context())
		if err != nil {
			svr.Log(err, "unable to retrieve blog posts")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		buf := &bytes.Buffer{}
		enc := gob.NewEncoder(buf)
		if err := enc.Encode(posts); err != nil {
			svr.Log(err, "unable to encode blog posts")
		} else if err := svr.CacheSet(server.CacheKeyBlogPosts, buf.Bytes()); err != nil {
			svr.Log(err, "unable to cache set blog posts")
		}
		svr.JSON(w, http.StatusOK, posts)
	}
}

func BlogPostByIDHandler(svr server.Server, blogRepo blogGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		post, err := blogRepo.ByID(r.Context(), vars["id"])
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "blog post not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve blog post by id")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, post)
	}
}

package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/jobseekhq/job-portal/internal/applied"
	"github.com/jobseekhq/job-portal/internal/blog"
	"github.com/jobseekhq/job-portal/internal/config"
	"github.com/jobseekhq/job-portal/internal/database"
	"github.com/jobseekhq/job-portal/internal/handler"
	"github.com/jobseekhq/job-portal/internal/job"
	"github.com/jobseekhq/job-portal/internal/middleware"
	"github.com/jobseekhq/job-portal/internal/server"
)

func main() {
	// best-effort, env vars win over .env
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)

	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(middleware.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Env != "dev",
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.Env != "dev" {
		// frontend and API live on different sites in production
		sessionStore.Options.SameSite = http.SameSiteNoneMode
	}

	jobRepo := job.NewRepository(conn)
	appliedRepo := applied.NewRepository(conn)
	blogRepo := blog.NewRepository(conn)

	svr := server.NewServer(cfg, conn, mux.NewRouter(), sessionStore)

	// jobs
	svr.RegisterRoute("/jobs/featured", handler.FeaturedJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/search", handler.SearchJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/count", handler.JobsCountHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/poster/{email}", middleware.TokenAuthenticatedMiddleware(
		sessionStore, cfg.JwtSigningKey, handler.JobsByPosterHandler(svr, jobRepo),
	), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", handler.JobByIDHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", handler.UpdateJobHandler(svr, jobRepo), []string{"PATCH"})
	svr.RegisterRoute("/jobs/{id}", handler.DeleteJobHandler(svr, jobRepo), []string{"DELETE"})
	svr.RegisterRoute("/jobs", handler.ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs", handler.CreateJobHandler(svr, jobRepo), []string{"POST"})

	// applications
	svr.RegisterRoute("/applications/mine", middleware.TokenAuthenticatedMiddleware(
		sessionStore, cfg.JwtSigningKey, handler.MyApplicationsHandler(svr, appliedRepo),
	), []string{"GET"})
	svr.RegisterRoute("/applications", handler.SubmitApplicationHandler(svr, appliedRepo), []string{"POST"})
	svr.RegisterRoute("/applications", handler.ListApplicationsHandler(svr, appliedRepo), []string{"GET"})

	// blog
	svr.RegisterRoute("/blogs/{id}", handler.BlogPostByIDHandler(svr, blogRepo), []string{"GET"})
	svr.RegisterRoute("/blogs", handler.ListBlogPostsHandler(svr, blogRepo), []string{"GET"})

	// auth
	svr.RegisterRoute("/auth/token", handler.IssueTokenHandler(svr), []string{"POST"})
	svr.RegisterRoute("/auth/logout", handler.LogoutHandler(svr), []string{"POST"})

	log.Printf("listening on :%s", cfg.Port)
	if err := svr.Run(); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

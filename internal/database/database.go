package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	job_title VARCHAR(255) NOT NULL,
// 	description TEXT NOT NULL,
// 	category VARCHAR(100) NOT NULL,
// 	location VARCHAR(255) NOT NULL,
// 	deadline TIMESTAMP NOT NULL,
// 	posted_by VARCHAR(255) NOT NULL,
// 	applicants INTEGER NOT NULL DEFAULT 0,
// 	status VARCHAR(50) NOT NULL DEFAULT 'open',
// 	slug VARCHAR(255) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX job_category_idx ON job (category);
// CREATE INDEX job_deadline_idx ON job (deadline);
// CREATE INDEX job_posted_by_idx ON job (posted_by);

// CREATE TABLE IF NOT EXISTS applied_job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	job_id CHAR(27) NOT NULL,
// 	email VARCHAR(255) NOT NULL,
// 	category VARCHAR(100) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// two concurrent submissions for the same job race past the handler's
// existence check, the index below is what actually rejects the second one
// CREATE UNIQUE INDEX applied_job_email_job_id_idx ON applied_job (email, job_id);
// CREATE INDEX applied_job_email_idx ON applied_job (email);

// CREATE TABLE IF NOT EXISTS blog_post (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	title VARCHAR(255) NOT NULL,
// 	description VARCHAR(255) NOT NULL,
// 	tags VARCHAR(255) NOT NULL,
// 	slug VARCHAR(255) NOT NULL,
// 	text TEXT NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	published_at TIMESTAMP DEFAULT NULL,
// 	created_by VARCHAR(255) NOT NULL,
// 	PRIMARY KEY(id)
// );

func GetDbConn(user, password, host, port, name, sslMode string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, name, sslMode,
	))
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}
	return conn, nil
}

func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

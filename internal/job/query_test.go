package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "engineer", "engineer"},
		{"percent", "100% remote", `100\% remote`},
		{"underscore", "c_suite", `c\_suite`},
		{"backslash", `back\slash`, `back\\slash`},
		{"all metacharacters", `%_\`, `\%\_\\`},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, escapeLike(c.in))
		})
	}
}

func TestWhereClause(t *testing.T) {
	t.Run("search only", func(t *testing.T) {
		where, args := Query{Search: "engineer"}.whereClause()
		assert.Equal(t, `job_title ILIKE '%' || $1 || '%'`, where)
		assert.Equal(t, []interface{}{"engineer"}, args)
	})
	t.Run("search and category", func(t *testing.T) {
		where, args := Query{Search: "engineer", Category: "IT"}.whereClause()
		assert.Equal(t, `job_title ILIKE '%' || $1 || '%' AND category = $2`, where)
		assert.Equal(t, []interface{}{"engineer", "IT"}, args)
	})
	t.Run("empty search matches all", func(t *testing.T) {
		where, args := Query{}.whereClause()
		assert.Equal(t, `job_title ILIKE '%' || $1 || '%'`, where)
		assert.Equal(t, []interface{}{""}, args)
	})
	t.Run("metacharacters are escaped", func(t *testing.T) {
		_, args := Query{Search: "50%_off"}.whereClause()
		assert.Equal(t, []interface{}{`50\%\_off`}, args)
	})
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		name string
		sort string
		want string
	}{
		{"unspecified keeps insertion order", "", `ORDER BY created_at ASC, id ASC`},
		{"asc sorts by deadline ascending", "asc", `ORDER BY deadline ASC, id ASC`},
		{"desc sorts by deadline descending", "desc", `ORDER BY deadline DESC, id ASC`},
		{"any other value sorts descending", "newest", `ORDER BY deadline DESC, id ASC`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Query{Sort: c.sort}.orderClause())
		})
	}
}

package job

import (
	"fmt"
	"strings"
)

// Query captures the search/filter/sort axes of the job search endpoint.
// Zero values mean match-all with no particular order.
type Query struct {
	Search   string // case-insensitive substring match on job_title
	Category string // exact match on category
	Sort     string // "asc" sorts by deadline ascending, any other non-empty value descending
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE metacharacters so user input is always matched
// as a literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// whereClause returns the predicate shared by the windowed fetch and the
// count query. An empty search matches every row.
func (q Query) whereClause() (string, []interface{}) {
	where := `job_title ILIKE '%' || $1 || '%'`
	args := []interface{}{escapeLike(q.Search)}
	if q.Category != "" {
		args = append(args, q.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	return where, args
}

func (q Query) orderClause() string {
	switch {
	case q.Sort == "":
		// insertion order keeps windows deterministic when no sort is given
		return `ORDER BY created_at ASC, id ASC`
	case q.Sort == "asc":
		return `ORDER BY deadline ASC, id ASC`
	default:
		return `ORDER BY deadline DESC, id ASC`
	}
}

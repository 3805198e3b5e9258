package store

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps query in % wildcards after escaping LIKE metacharacters
// with a backslash, so SQL-backed Search implementations match it literally.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

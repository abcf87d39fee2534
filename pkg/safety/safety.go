// Package safety restricts model output to read-only SELECT statements.
//
// The checks are keyword based and do not parse SQL. Statements that cause
// side effects without using one of ForbiddenKeywords are not detected.
package safety

import (
	"regexp"
	"strings"
)

// FallbackSQL is returned by ExtractSQL when the model produced nothing.
const FallbackSQL = "SELECT 1;"

var ForbiddenKeywords = []string{
	"INSERT",
	"UPDATE",
	"DELETE",
	"DROP",
	"ALTER",
	"CREATE",
	"TRUNCATE",
	"EXEC",
	"MERGE",
	"REPLACE",
	"PRAGMA",
	"ATTACH",
	"DETACH",
}

var (
	fenceLanguage = regexp.MustCompile("(?i)```sql")
	selectPrefix  = regexp.MustCompile(`(?i)^\s*SELECT\b`)
	forbidden     = regexp.MustCompile(`(?i)\b(` + strings.Join(ForbiddenKeywords, "|") + `)\b`)
)

// ExtractSQL strips markdown code fences and surrounding whitespace from raw
// model output.
func ExtractSQL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return FallbackSQL
	}

	s := strings.TrimSpace(raw)
	s = fenceLanguage.ReplaceAllLiteralString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

// IsSelectOnly reports whether sql starts with SELECT and mentions none of
// ForbiddenKeywords as a whole word.
func IsSelectOnly(sql string) bool {
	if strings.TrimSpace(sql) == "" {
		return false
	}

	s := strings.TrimLeft(sql, " \t\r\n\v\f")
	if !selectPrefix.MatchString(s) {
		return false
	}

	return !forbidden.MatchString(s)
}

// FindForbidden returns the first forbidden keyword in sql, upper-cased, or
// an empty string.
func FindForbidden(sql string) string {
	return strings.ToUpper(forbidden.FindString(sql))
}

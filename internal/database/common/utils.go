package common

import (
	"regexp"
	"strings"
)

var (
	commentRegex = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex  = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
)

// ParseSQLStatements splits a script on semicolons that are outside quoted
// strings, dropping line comments and empty statements.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	quoted := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			quoted[i] = true
		}
	}

	statements := make([]string, 0, strings.Count(sql, ";")+1)
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i, char := range sql {
		if char == ';' && !quoted[i] {
			flush()
			continue
		}
		current.WriteRune(char)
	}
	flush()

	return statements
}

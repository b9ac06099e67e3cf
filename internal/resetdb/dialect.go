package resetdb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect produces the SQL a reset issues against one database engine.
type Dialect interface {
	Name() string
	// ListTablesQuery returns the catalog query for all tables in schema.
	ListTablesQuery(schema string) (string, []any, error)
	// TruncateStatements returns the statements that empty tables, to be run
	// in order on one session. Nil when tables is empty.
	TruncateStatements(tables []string) []string
	ResetSequenceStatement(table, idColumn string) string
}

// DefaultSchema is the schema tables are discovered in when none is given.
const DefaultSchema = "public"

var validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// quoteIdent leaves plain lowercase identifiers that no engine reserves alone
// and quotes everything else with q, doubling any embedded q.
func quoteIdent(name string, q byte) string {
	if validIdentifier.MatchString(name) && !reservedWords[name] {
		return name
	}
	s := string(q)
	return s + strings.ReplaceAll(name, s, s+s) + s
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// DialectFor maps a configured provider name to its dialect.
func DialectFor(provider, schema string) (Dialect, error) {
	switch strings.ToLower(provider) {
	case "", "postgresql", "postgres":
		return NewPostgres(schema), nil
	case "mysql":
		return MySQL{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// Postgres truncates with a single cascading TRUNCATE and advances
// <table>_<id>_seq sequences with setval.
type Postgres struct {
	schema string
	qb     squirrel.StatementBuilderType
}

func NewPostgres(schema string) *Postgres {
	if schema == "" {
		schema = DefaultSchema
	}
	return &Postgres{
		schema: schema,
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Postgres) Name() string { return "postgresql" }

func (p *Postgres) ListTablesQuery(schema string) (string, []any, error) {
	if schema == "" {
		schema = p.schema
	}
	return p.qb.Select("tablename").
		From("pg_catalog.pg_tables").
		Where(squirrel.Eq{"schemaname": schema}).
		OrderBy("tablename").
		ToSql()
}

func (p *Postgres) qualify(table string) string {
	if p.schema == DefaultSchema {
		return quoteIdent(table, '"')
	}
	return quoteIdent(p.schema, '"') + "." + quoteIdent(table, '"')
}

func (p *Postgres) TruncateStatements(tables []string) []string {
	if len(tables) == 0 {
		return nil
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = p.qualify(t)
	}
	return []string{fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(names, ", "))}
}

func (p *Postgres) ResetSequenceStatement(table, idColumn string) string {
	seq := quoteIdent(table+"_"+idColumn+"_seq", '"')
	if p.schema != DefaultSchema {
		seq = quoteIdent(p.schema, '"') + "." + seq
	}
	return fmt.Sprintf("SELECT setval(%s, COALESCE((SELECT MAX(%s)+1 FROM %s), 1), false)",
		quoteLiteral(seq), quoteIdent(idColumn, '"'), p.qualify(table))
}

// MySQL has no cascading truncate, so foreign key checks are switched off for
// the session while each table is truncated.
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) ListTablesQuery(schema string) (string, []any, error) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).
		Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_type": "BASE TABLE"})
	if schema == "" || schema == DefaultSchema {
		q = q.Where("table_schema = DATABASE()")
	} else {
		q = q.Where(squirrel.Eq{"table_schema": schema})
	}
	return q.OrderBy("table_name").ToSql()
}

func (MySQL) TruncateStatements(tables []string) []string {
	if len(tables) == 0 {
		return nil
	}
	stmts := make([]string, 0, len(tables)+2)
	stmts = append(stmts, "SET FOREIGN_KEY_CHECKS = 0")
	for _, t := range tables {
		stmts = append(stmts, "TRUNCATE TABLE "+quoteIdent(t, '`'))
	}
	return append(stmts, "SET FOREIGN_KEY_CHECKS = 1")
}

// ResetSequenceStatement relies on InnoDB raising AUTO_INCREMENT to MAX(id)+1
// whenever the requested value is lower.
func (MySQL) ResetSequenceStatement(table, _ string) string {
	return fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", quoteIdent(table, '`'))
}

// SQLite deletes rows table by table and rewrites sqlite_sequence for
// AUTOINCREMENT tables.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) ListTablesQuery(string) (string, []any, error) {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).
		Select("name").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where("name NOT LIKE 'sqlite_%'").
		OrderBy("name").
		ToSql()
}

func (SQLite) TruncateStatements(tables []string) []string {
	if len(tables) == 0 {
		return nil
	}
	stmts := make([]string, 0, len(tables)+2)
	stmts = append(stmts, "PRAGMA foreign_keys = OFF")
	for _, t := range tables {
		stmts = append(stmts, "DELETE FROM "+quoteIdent(t, '"'))
	}
	return append(stmts, "PRAGMA foreign_keys = ON")
}

func (SQLite) ResetSequenceStatement(table, idColumn string) string {
	return fmt.Sprintf("UPDATE sqlite_sequence SET seq = (SELECT COALESCE(MAX(%s), 0) FROM %s) WHERE name = %s",
		quoteIdent(idColumn, '"'), quoteIdent(table, '"'), quoteLiteral(table))
}

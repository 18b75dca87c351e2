package repositories

import sq "github.com/Masterminds/squirrel"

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// dayColumn renders a DATE column back as YYYY-MM-DD text.
func dayColumn(col string) string {
	return "to_char(" + col + ", 'YYYY-MM-DD') AS " + col
}

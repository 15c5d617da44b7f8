package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder configured for PostgreSQL
// ($N placeholders). Repositories start every query from here.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

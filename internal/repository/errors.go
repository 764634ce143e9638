package repository

import "strings"

// isUniqueViolation detects PostgreSQL unique constraint errors (code 23505)
// from the driver error text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

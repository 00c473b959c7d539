package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// ErrNotFound is returned by single-row reads when no row matches
var ErrNotFound = errors.New("not found")

// quiet silences the GORM logger for reads where "record not found" is expected
func quiet(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})
}

// tagged prefixes the statement with an operation comment so slow query logs
// and pg_stat_statements can be traced back to the endpoint
func tagged(tx *gorm.DB, stmt, op string) *gorm.DB {
	return tx.Clauses(hints.CommentBefore(stmt, "op="+op))
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

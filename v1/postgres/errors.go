package postgres

import (
	"errors"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
)

// Translator classifies pgx errors by SQLSTATE. Constraint codes go through
// GORM's postgres error translation first.
var Translator unidb.ErrorTranslator = unidb.TranslatorFunc(translate)

// SQLSTATE codes not covered by GORM's translation.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
var errCodes = map[string]error{
	"42P01": unidb.ErrUndefinedTable,
	"23502": unidb.ErrNotNull,
	"40001": unidb.ErrSerialization,
	"40P01": unidb.ErrSerialization,
	"08000": unidb.ErrConnection,
	"08003": unidb.ErrConnection,
	"08006": unidb.ErrConnection,
	"57P01": unidb.ErrConnection,
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
			return unidb.ErrConnection
		}
		return nil
	}

	if translated := (postgres.Dialector{}).Translate(pgErr); translated != error(pgErr) {
		return unidb.TranslateError(translated)
	}
	return errCodes[pgErr.Code]
}

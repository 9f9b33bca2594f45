package mariadb

import (
	"errors"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
)

// Translator classifies go-sql-driver errors by server error number.
// Duplicate and foreign key errors go through GORM's mysql error translation.
var Translator unidb.ErrorTranslator = unidb.TranslatorFunc(translate)

// https://mariadb.com/kb/en/mariadb-error-codes/
var errCodes = map[uint16]error{
	1146: unidb.ErrUndefinedTable,
	1054: unidb.ErrInvalidField,
	1048: unidb.ErrNotNull,
	1364: unidb.ErrNotNull,
	3819: unidb.ErrCheckViolation,
	4025: unidb.ErrCheckViolation,
	1205: unidb.ErrSerialization,
	1213: unidb.ErrSerialization,
}

func translate(err error) error {
	if errors.Is(err, mysqldriver.ErrInvalidConn) {
		return unidb.ErrConnection
	}

	var mysqlErr *mysqldriver.MySQLError
	if !errors.As(err, &mysqlErr) {
		return nil
	}

	if translated := (mysql.Dialector{}).Translate(mysqlErr); translated != error(mysqlErr) {
		return unidb.TranslateError(translated)
	}
	return errCodes[mysqlErr.Number]
}

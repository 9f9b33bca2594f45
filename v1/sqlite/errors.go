package sqlite

import (
	"errors"
	"strings"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/mattn/go-sqlite3"
)

// Translator classifies go-sqlite3 errors.
var Translator unidb.ErrorTranslator = unidb.TranslatorFunc(translate)

func translate(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return unidb.ErrDuplicateKey
	case sqlite3.ErrConstraintForeignKey:
		return unidb.ErrForeignKey
	case sqlite3.ErrConstraintNotNull:
		return unidb.ErrNotNull
	case sqlite3.ErrConstraintCheck:
		return unidb.ErrCheckViolation
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return unidb.ErrSerialization
	case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrIoErr:
		return unidb.ErrConnection
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return unidb.ErrUndefinedTable
	case strings.Contains(msg, "no such column"), strings.Contains(msg, "has no column named"):
		return unidb.ErrInvalidField
	}
	return nil
}

package duckdb

import (
	"errors"
	"strings"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/duckdb/duckdb-go/v2"
)

// Translator classifies duckdb-go errors.
var Translator unidb.ErrorTranslator = unidb.TranslatorFunc(translate)

func translate(err error) error {
	var duckErr *duckdb.Error
	if !errors.As(err, &duckErr) {
		return nil
	}

	msg := strings.ToLower(duckErr.Msg)
	switch duckErr.Type {
	case duckdb.ErrorTypeCatalog:
		if strings.Contains(msg, "table with name") {
			return unidb.ErrUndefinedTable
		}
	case duckdb.ErrorTypeBinder:
		if strings.Contains(msg, "column") {
			return unidb.ErrInvalidField
		}
	case duckdb.ErrorTypeConstraint:
		switch {
		case strings.Contains(msg, "duplicate key"):
			return unidb.ErrDuplicateKey
		case strings.Contains(msg, "foreign key"):
			return unidb.ErrForeignKey
		case strings.Contains(msg, "not null"):
			return unidb.ErrNotNull
		case strings.Contains(msg, "check constraint"):
			return unidb.ErrCheckViolation
		}
	case duckdb.ErrorTypeTransaction:
		return unidb.ErrSerialization
	case duckdb.ErrorTypeConnection, duckdb.ErrorTypeIO, duckdb.ErrorTypeNetwork:
		return unidb.ErrConnection
	}
	return nil
}

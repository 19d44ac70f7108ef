package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503),
// p. ej. borrar un cliente que todavía tiene facturas.
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// isMissingRow agrupa los casos en que una búsqueda por ID equivale a "no existe":
// sin filas o un ID que PostgreSQL no acepta como UUID (22P02).
func isMissingRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidText)
}

// isUUID indica si id puede compararse contra una columna UUID. Se valida antes
// de consultar: un 22P02 dentro de una transacción la deja abortada.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

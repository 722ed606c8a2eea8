package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que o motor de reservas precisa distinguir
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation: dois writers criaram o mesmo (business, phone);
// o perdedor refaz o lookup.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsExclusionConflict: constraint de exclusão barrou um intervalo sobreposto.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

// IsSerializationFailure: a transação SERIALIZABLE perdeu a corrida.
func IsSerializationFailure(err error) bool {
	return pgCode(err) == pgSerializationFailure
}

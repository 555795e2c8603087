package repositories

import (
	"errors"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps driver errors onto the apperrors taxonomy. Errors that are
// already typed pass through unchanged.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if isDuplicateKey(err) {
		return &apperrors.Error{Kind: apperrors.KindConflict, Message: op + ": duplicate value", Err: err}
	}
	return apperrors.Dependency(op, err)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern for a case-insensitive substring match;
// use it with "LIKE ? ESCAPE '!'".
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

package sqlite

import (
	"strings"
	"time"

	"github.com/construsys/construtora/internal/db"
	"github.com/construsys/construtora/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn *db.DB
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.ClienteRepo = (*SQLiteRepo)(nil)
var _ repository.EngenheiroRepo = (*SQLiteRepo)(nil)
var _ repository.EmpreiteiraRepo = (*SQLiteRepo)(nil)
var _ repository.TrabalhadorRepo = (*SQLiteRepo)(nil)
var _ repository.ObraRepo = (*SQLiteRepo)(nil)
var _ repository.UserRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB) *SQLiteRepo {
	return &SQLiteRepo{conn: conn}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// translateErr converts SQLite constraint violations into typed
// repository.ConstraintError values. The driver reports violations as
// "UNIQUE constraint failed: <table>.<column>" and
// "FOREIGN KEY constraint failed"; anything else passes through unchanged.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	const uniquePrefix = "UNIQUE constraint failed: "
	if i := strings.Index(msg, uniquePrefix); i >= 0 {
		rest := msg[i+len(uniquePrefix):]
		if j := strings.IndexAny(rest, " ,("); j >= 0 {
			rest = rest[:j]
		}
		field := rest
		if k := strings.LastIndex(rest, "."); k >= 0 {
			field = rest[k+1:]
		}
		return &repository.ConstraintError{Kind: repository.KindUnique, Field: field, Err: err}
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &repository.ConstraintError{Kind: repository.KindForeignKey, Err: err}
	}

	return err
}

// simple-array storage: list fields are kept as comma-joined text, matching
// the legacy rows this schema was migrated from.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

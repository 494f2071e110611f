// Package store persists customers, users and finalized invoices with gorm.
package store

import (
	stderrors "errors"
	"strings"

	"github.com/diewo77/gst-invoices/internal/billing"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = stderrors.New("not found")
	ErrDuplicate = stderrors.New("already exists")
	// ErrInUse is returned when deleting a customer that invoices refer to.
	ErrInUse = stderrors.New("still referenced")
)

// Store is the gorm-backed repository. It is safe for concurrent use.
type Store struct {
	db  *gorm.DB
	ids billing.IDGenerator
}

func New(db *gorm.DB, ids billing.IDGenerator) *Store {
	return &Store{db: db, ids: ids}
}

// DB exposes the connection for health checks.
func (s *Store) DB() *gorm.DB { return s.db }

// translate maps gorm errors onto the package sentinels and adds context.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(ErrNotFound, op)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrDuplicate, op)
	}
	return errors.Wrap(err, op)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps q for a substring match. Wildcards in q match literally
// when the condition is written with the like helper.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// like renders "column LIKE ?" with a backslash escape, valid on both
// SQLite and Postgres.
func like(column string) string {
	return column + ` LIKE ? ESCAPE '\'`
}

package store

import (
	"context"
	"strings"

	"github.com/diewo77/gst-invoices/internal/models"
)

// CreateUser inserts u with a fresh id. The email is stored lower-cased;
// a taken email yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = s.ids.NextID()
	u.Email = normalizeEmail(u.Email)
	return translate(s.db.WithContext(ctx).Create(u).Error, "create user")
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", normalizeEmail(email)).Error; err != nil {
		return models.User{}, translate(err, "user by email")
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return models.User{}, translate(err, "user by id")
	}
	return u, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

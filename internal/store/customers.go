package store

import (
	"context"
	"strings"

	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/pkg/errors"
)

// ListCustomers returns customers ordered by name. A non-empty search is
// matched case-insensitively against name, email and GSTIN.
func (s *Store) ListCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})
	if search = strings.ToLower(strings.TrimSpace(search)); search != "" {
		p := likePattern(search)
		q = q.Where(like("LOWER(name)")+" OR "+like("LOWER(email)")+" OR "+like("LOWER(gstin)"), p, p, p)
	}
	var out []models.Customer
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, translate(err, "list customers")
	}
	return out, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return models.Customer{}, translate(err, "get customer")
	}
	return c, nil
}

// CreateCustomer assigns a fresh id to c and inserts it.
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	c.ID = s.ids.NextID()
	return translate(s.db.WithContext(ctx).Create(c).Error, "create customer")
}

// UpdateCustomer overwrites the editable fields of an existing customer.
func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	existing, err := s.GetCustomer(ctx, c.ID)
	if err != nil {
		return err
	}
	existing.Name = c.Name
	existing.Email = c.Email
	existing.GSTIN = c.GSTIN
	existing.Address = c.Address
	existing.Phone = c.Phone
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return translate(err, "update customer")
	}
	*c = existing
	return nil
}

// DeleteCustomer removes a customer that no invoice refers to.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).Where("customer_id = ?", id).Count(&refs).Error; err != nil {
		return translate(err, "count customer invoices")
	}
	if refs > 0 {
		return errors.Wrapf(ErrInUse, "customer %d has %d invoices", id, refs)
	}
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete customer")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "delete customer")
	}
	return nil
}

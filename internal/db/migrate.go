package db

import (
	"strings"

	"github.com/diewo77/gst-invoices/internal/billing"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Migrate runs AutoMigrate for all models.
// Call this at application startup or as part of a migration step.
func Migrate(db *gorm.DB) error {
	all := []any{
		&models.User{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoiceSequence{},
	}
	if db.Dialector.Name() == "sqlite" {
		if err := decimalsAsText(db, all...); err != nil {
			return err
		}
	}
	if err := db.AutoMigrate(all...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// decimalsAsText declares numeric columns as TEXT. SQLite gives numeric(p,s)
// columns NUMERIC affinity and keeps only 15 significant digits of each
// value; a TEXT column stores the decimal string unchanged.
func decimalsAsText(db *gorm.DB, all ...any) error {
	for _, m := range all {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return errors.Wrapf(err, "parse %T", m)
		}
		for _, f := range stmt.Schema.Fields {
			if strings.HasPrefix(strings.ToLower(string(f.DataType)), "numeric") {
				f.DataType = schema.String
			}
		}
	}
	return nil
}

// demoCustomers are loaded into an empty database when seeding is enabled.
var demoCustomers = []models.Customer{
	{
		Name:    "Tech Solutions Ltd",
		Email:   "contact@techsolutions.com",
		GSTIN:   "27AABCT3518Q1Z2",
		Address: "123 Tech Park, Mumbai, Maharashtra",
		Phone:   "+91 98765 43210",
	},
	{
		Name:    "Digital Dynamics",
		Email:   "info@digitaldynamics.com",
		GSTIN:   "29AABCD1234E1Z5",
		Address: "456 Cyber City, Bangalore, Karnataka",
		Phone:   "+91 98765 43211",
	},
	{
		Name:    "Innovate Systems",
		Email:   "hello@innovatesystems.com",
		GSTIN:   "07AAACI1234J1Z4",
		Address: "789 Business Hub, Delhi, NCR",
		Phone:   "+91 98765 43212",
	},
}

// Seed inserts the demo customers when the customers table is empty.
// Should be called after Migrate.
func Seed(db *gorm.DB, ids billing.IDGenerator) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count customers")
	}
	if count > 0 {
		return nil
	}
	rows := make([]models.Customer, len(demoCustomers))
	copy(rows, demoCustomers)
	for i := range rows {
		rows[i].ID = ids.NextID()
	}
	if err := db.Create(&rows).Error; err != nil {
		return errors.Wrap(err, "seed customers")
	}
	zap.L().Info("seeded demo customers", zap.Int("count", len(rows)))
	return nil
}

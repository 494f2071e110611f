package db

import (
	"context"
	"testing"

	"github.com/diewo77/gst-invoices/internal/config"
	"github.com/diewo77/gst-invoices/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterIDs struct{ n int64 }

func (c *counterIDs) NextID() int64 { c.n++; return c.n }

func TestOpenMigrateSeed(t *testing.T) {
	conn, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, Ping(context.Background(), conn))
	require.NoError(t, Migrate(conn))

	ids := &counterIDs{}
	require.NoError(t, Seed(conn, ids))
	require.NoError(t, Seed(conn, ids))

	var customers []models.Customer
	require.NoError(t, conn.Order("id").Find(&customers).Error)
	require.Len(t, customers, 3)
	assert.Equal(t, int64(1), customers[0].ID)
	assert.Equal(t, "Tech Solutions Ltd", customers[0].Name)
	assert.Equal(t, int64(3), ids.n)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"postgres://u:p@h:5432/db", "postgres://u:p@h:5432/db"},
		{`"host=h  user=u dbname=d"`, "host=h user=u dbname=d sslmode=disable"},
		{"host=h user=u sslmode=require", "host=h user=u sslmode=require"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDSN(tt.in), tt.in)
	}
}

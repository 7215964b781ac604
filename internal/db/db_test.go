package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"bizdash-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBUser:     "admin",
		DBPassword: "s3cret",
		DBName:     "bizdash",
		DBPort:     "5433",
	}

	assert.Equal(t,
		"host=db.internal user=admin password=s3cret dbname=bizdash port=5433 sslmode=disable",
		DSN(cfg),
	)
}

// stubDriver opens connections whose Ping result is controlled by the test.
type stubDriver struct{ pingErr error }

func (d *stubDriver) Open(string) (driver.Conn, error) { return &stubConn{pingErr: d.pingErr}, nil }

type stubConn struct{ pingErr error }

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }
func (c *stubConn) Ping(context.Context) error          { return c.pingErr }

func init() {
	sql.Register("stub_ok", &stubDriver{})
	sql.Register("stub_ping_fail", &stubDriver{pingErr: errors.New("connection refused")})
}

func TestNewDatabase(t *testing.T) {
	cfg := &config.Config{DBHost: "localhost", DBPort: "5432"}

	t.Run("Success", func(t *testing.T) {
		db, err := newDatabaseWithDriver(cfg, "stub_ok")
		require.NoError(t, err)
		assert.NotNil(t, db)
		db.Close()
	})

	t.Run("PingFailure", func(t *testing.T) {
		db, err := newDatabaseWithDriver(cfg, "stub_ping_fail")
		assert.Nil(t, db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ping DB")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		db, err := newDatabaseWithDriver(cfg, "no_such_driver")
		assert.Nil(t, db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to DB")
	})
}

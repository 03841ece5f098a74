package database

import (
	"context"
	"database/sql/driver"
	"strconv"

	"github.com/pkg/errors"
)

// driverConnector wraps a driver.Driver to implement driver.Connector for
// drivers that don't support OpenConnector.
type driverConnector struct {
	driver driver.Driver
	dsn    string
}

func newDriverConnector(drv driver.Driver, dsn string) *driverConnector {
	return &driverConnector{driver: drv, dsn: dsn}
}

func (dc *driverConnector) Connect(_ context.Context) (driver.Conn, error) {
	return dc.driver.Open(dc.dsn)
}

func (dc *driverConnector) Driver() driver.Driver {
	return dc.driver
}

// pragmaConnector runs a fixed list of statements on every new connection
// before handing it to the pool.
type pragmaConnector struct {
	connector driver.Connector
	pragmas   []string
}

func newPragmaConnector(connector driver.Connector, pragmas []string) *pragmaConnector {
	return &pragmaConnector{connector: connector, pragmas: pragmas}
}

func (pc *pragmaConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := pc.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	for _, pragma := range pc.pragmas {
		if err := execConn(ctx, conn, pragma); err != nil {
			_ = conn.Close()
			return nil, errors.Wrapf(err, "failed to run %q", pragma)
		}
	}
	return conn, nil
}

func (pc *pragmaConnector) Driver() driver.Driver {
	return pc.connector.Driver()
}

func execConn(ctx context.Context, conn driver.Conn, query string) error {
	if execer, ok := conn.(driver.ExecerContext); ok {
		_, err := execer.ExecContext(ctx, query, nil)
		if !errors.Is(err, driver.ErrSkip) {
			return err
		}
	}

	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.Exec(nil) //nolint:staticcheck // fallback for drivers without ExecerContext
	return err
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

package processor

import (
	"fmt"

	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/mapper"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// Relational database property keys.
const (
	DatasourceDriverClassName = "spring.datasource.driver-class-name"
	DatasourceURL             = "spring.datasource.url"
	DatasourceUsername        = "spring.datasource.username"
	DatasourcePassword        = "spring.datasource.password"
	R2DBCURL                  = "spring.r2dbc.url"
	R2DBCUsername             = "spring.r2dbc.username"
	R2DBCPassword             = "spring.r2dbc.password"
)

// database describes how the connection URLs of a relational database are assembled
// from the host, port and database entries of a secret.
type database struct {
	// jdbc and r2dbc are fmt formats taking host, port and database.
	jdbc  string
	r2dbc string
	// drivers are the driver class names tried in order, the first available one is used.
	drivers []string
}

// apply maps credentials and URLs. The jdbc-url and r2dbc-url entries take precedence
// over the composed URLs.
func (d database) apply(p probe.Func) mapFunc {
	return func(m *mapper.Mapper, props properties.Properties) {
		if driver, ok := probe.First(p, d.drivers...); ok {
			props[DatasourceDriverClassName] = driver
		}

		m.From("password").To(DatasourcePassword)
		m.From("username").To(DatasourceUsername)
		if url := m.From("jdbc-url"); url.Present() {
			url.To(DatasourceURL)
		} else {
			m.From("host", "port", "database").ToFunc(DatasourceURL, format(d.jdbc))
		}

		m.From("password").To(R2DBCPassword)
		m.From("username").To(R2DBCUsername)
		if url := m.From("r2dbc-url"); url.Present() {
			url.To(R2DBCURL)
		} else {
			m.From("host", "port", "database").ToFunc(R2DBCURL, format(d.r2dbc))
		}
	}
}

func format(f string) func(values ...string) interface{} {
	return func(values ...string) interface{} {
		args := make([]interface{}, len(values))
		for i, v := range values {
			args[i] = v
		}
		return fmt.Sprintf(f, args...)
	}
}

// NewDB2 returns the processor of DB2 bindings.
func NewDB2(g *guard.Guard) Processor {
	return newKindProcessor(DB2, g, database{
		jdbc:  "jdbc:db2://%s:%s/%s",
		r2dbc: "r2dbc:db2://%s:%s/%s",
	}.apply(nil))
}

// NewMySQL returns the processor of MySQL bindings.
//
// The driver class name prefers the MariaDB driver over the MySQL Connector/J
// driver and is left unset when p reports neither as available.
func NewMySQL(g *guard.Guard, p probe.Func) Processor {
	return newKindProcessor(MySQL, g, database{
		jdbc:    "jdbc:mysql://%s:%s/%s",
		r2dbc:   "r2dbc:mysql://%s:%s/%s",
		drivers: []string{"org.mariadb.jdbc.Driver", "com.mysql.cj.jdbc.Driver"},
	}.apply(p))
}

// NewOracle returns the processor of Oracle bindings.
func NewOracle(g *guard.Guard, p probe.Func) Processor {
	return newKindProcessor(Oracle, g, database{
		jdbc:    "jdbc:oracle:thin:@%s:%s/%s",
		r2dbc:   "r2dbc:oracle://%s:%s/%s",
		drivers: []string{"oracle.jdbc.OracleDriver"},
	}.apply(p))
}

// NewPostgreSQL returns the processor of PostgreSQL bindings.
func NewPostgreSQL(g *guard.Guard, p probe.Func) Processor {
	return newKindProcessor(PostgreSQL, g, database{
		jdbc:    "jdbc:postgresql://%s:%s/%s",
		r2dbc:   "r2dbc:postgresql://%s:%s/%s",
		drivers: []string{"org.postgresql.Driver"},
	}.apply(p))
}

// NewSQLServer returns the processor of SQL Server bindings.
func NewSQLServer(g *guard.Guard) Processor {
	return newKindProcessor(SQLServer, g, database{
		jdbc:  "jdbc:sqlserver://%s:%s;database=%s",
		r2dbc: "r2dbc:sqlserver://%s:%s/%s",
	}.apply(nil))
}

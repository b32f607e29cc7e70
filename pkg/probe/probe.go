// Package probe answers whether an optional runtime capability, such as a
// database driver, is available to the application.
package probe

import (
	"database/sql"
	"path/filepath"
)

// Func reports whether the named capability is available.
type Func func(name string) bool

// None reports every capability as unavailable.
func None(string) bool {
	return false
}

// Static reports the given capabilities as available.
func Static(names ...string) Func {
	available := make(map[string]struct{}, len(names))
	for _, n := range names {
		available[n] = struct{}{}
	}
	return func(name string) bool {
		_, ok := available[name]
		return ok
	}
}

// Any reports a capability as available when one of the probes does. Nil probes are skipped.
func Any(probes ...Func) Func {
	return func(name string) bool {
		for _, p := range probes {
			if p != nil && p(name) {
				return true
			}
		}
		return false
	}
}

// DefaultDriverJars maps driver capabilities to the file name patterns of the jars shipping them.
var DefaultDriverJars = map[string][]string{
	"org.mariadb.jdbc.Driver":  {"mariadb-java-client-*.jar"},
	"com.mysql.cj.jdbc.Driver": {"mysql-connector-j-*.jar", "mysql-connector-java-*.jar"},
	"org.postgresql.Driver":    {"postgresql-*.jar"},
	"oracle.jdbc.OracleDriver": {"ojdbc*.jar"},
}

// Classpath reports a capability as available when one of dirs holds a jar matching its patterns.
func Classpath(jars map[string][]string, dirs ...string) Func {
	return func(name string) bool {
		for _, pattern := range jars[name] {
			for _, dir := range dirs {
				if matches, err := filepath.Glob(filepath.Join(dir, pattern)); err == nil && len(matches) > 0 {
					return true
				}
			}
		}
		return false
	}
}

// DefaultDriverAliases maps driver capabilities to the database/sql driver names providing them.
var DefaultDriverAliases = map[string]string{
	"com.mysql.cj.jdbc.Driver": "mysql",
	"org.postgresql.Driver":    "postgres",
}

// SQLDrivers reports a capability as available when its alias is a registered database/sql driver
// of the running binary.
// The registry is read on every call, drivers registered later are seen.
func SQLDrivers(aliases map[string]string) Func {
	return func(name string) bool {
		driver, ok := aliases[name]
		if !ok {
			return false
		}
		for _, d := range sql.Drivers() {
			if d == driver {
				return true
			}
		}
		return false
	}
}

// First returns the first candidate reported as available by p, or false when there is none.
func First(p Func, candidates ...string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, c := range candidates {
		if p(c) {
			return c, true
		}
	}
	return "", false
}

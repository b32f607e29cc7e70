// Package guard decides whether the processing of a binding kind is enabled.
package guard

import (
	"strings"
)

// DefaultPrefix is the namespace of the enablement flags.
const DefaultPrefix = "bindings"

// Config is the read-only configuration consulted by a Guard. *viper.Viper satisfies it.
type Config interface {
	IsSet(key string) bool
	GetBool(key string) bool
}

// Guard evaluates the enablement flags:
//
//	<prefix>.enabled          disables every kind when false
//	<prefix>.<kind>.enabled   disables a single kind when false, kind lower cased
//
// Anything but an explicit false means enabled.
type Guard struct {
	cfg    Config
	prefix string
}

// Option customizes a Guard.
type Option func(*Guard)

// WithPrefix changes the flag namespace.
func WithPrefix(prefix string) Option {
	return func(g *Guard) {
		g.prefix = strings.TrimSuffix(prefix, ".")
	}
}

// New creates a Guard reading flags from cfg. A nil cfg enables everything.
func New(cfg Config, opts ...Option) *Guard {
	g := &Guard{cfg: cfg, prefix: DefaultPrefix}
	for _, o := range opts {
		o(g)
	}
	return g
}

// GlobalKey returns the name of the flag disabling every kind.
func (g *Guard) GlobalKey() string {
	return g.prefix + ".enabled"
}

// Key returns the name of the flag of the given kind.
func (g *Guard) Key(kind string) string {
	return g.prefix + "." + strings.ToLower(kind) + ".enabled"
}

// Enabled reports whether the given kind should be processed.
func (g *Guard) Enabled(kind string) bool {
	if g == nil || g.cfg == nil {
		return true
	}
	return g.flag(g.GlobalKey()) && g.flag(g.Key(kind))
}

func (g *Guard) flag(key string) bool {
	if !g.cfg.IsSet(key) {
		return true
	}
	return g.cfg.GetBool(key)
}

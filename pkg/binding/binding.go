// Package binding models the service bindings discovered for an application.
//
// A Binding is one secret bundle (for example the credentials of a database)
// tagged with the kind of technology it describes. Bindings is the ordered
// collection of every Binding found during discovery.
package binding

import (
	"fmt"

	"github.com/pkg/errors"
)

// Well known metadata keys of a binding.
const (
	// TypeKey holds the kind of the binding, e.g. MySQL.
	TypeKey = "type"
	// ProviderKey holds the optional provider of the binding, e.g. bitnami.
	ProviderKey = "provider"
)

// ErrDuplicateBinding is returned when two bindings share a name.
var ErrDuplicateBinding = errors.New("duplicate binding")

// Binding is an immutable view over a single service binding.
type Binding struct {
	name     string
	kind     string
	provider string
	secret   map[string]string
}

// New creates a Binding. The secret is copied, later changes to the passed map are not visible.
func New(name, kind, provider string, secret map[string]string) *Binding {
	s := make(map[string]string, len(secret))
	for k, v := range secret {
		s[k] = v
	}
	return &Binding{
		name:     name,
		kind:     kind,
		provider: provider,
		secret:   s,
	}
}

// Name returns the name of the binding.
func (b *Binding) Name() string {
	return b.name
}

// Kind returns the technology tag of the binding.
func (b *Binding) Kind() string {
	return b.kind
}

// Provider returns the provider of the binding, if any.
func (b *Binding) Provider() string {
	return b.provider
}

// Secret returns a copy of the secret entries.
func (b *Binding) Secret() map[string]string {
	s := make(map[string]string, len(b.secret))
	for k, v := range b.secret {
		s[k] = v
	}
	return s
}

// Get returns a single secret entry.
func (b *Binding) Get(key string) (string, bool) {
	v, ok := b.secret[key]
	return v, ok
}

func (b *Binding) String() string {
	return fmt.Sprintf("Binding{name: %s, kind: %s, provider: %s, keys: %d}", b.name, b.kind, b.provider, len(b.secret))
}

// Bindings is an ordered collection of uniquely named bindings.
type Bindings struct {
	entries []*Binding
}

// NewBindings creates a collection keeping the order of the arguments.
func NewBindings(bindings ...*Binding) (*Bindings, error) {
	seen := make(map[string]struct{}, len(bindings))
	entries := make([]*Binding, 0, len(bindings))
	for i, b := range bindings {
		if b == nil {
			return nil, fmt.Errorf("binding at position %d is nil", i)
		}
		if _, ok := seen[b.name]; ok {
			return nil, errors.Wrapf(ErrDuplicateBinding, "name %q", b.name)
		}
		seen[b.name] = struct{}{}
		entries = append(entries, b)
	}
	return &Bindings{entries: entries}, nil
}

// FilterBindings returns the bindings whose kind equals the given one, in discovery order.
func (bs *Bindings) FilterBindings(kind string) []*Binding {
	var result []*Binding
	if bs == nil {
		return result
	}
	for _, b := range bs.entries {
		if b.kind == kind {
			result = append(result, b)
		}
	}
	return result
}

// Find looks a binding up by name.
func (bs *Bindings) Find(name string) (*Binding, bool) {
	if bs == nil {
		return nil, false
	}
	for _, b := range bs.entries {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// All returns every binding in discovery order.
func (bs *Bindings) All() []*Binding {
	if bs == nil {
		return nil
	}
	result := make([]*Binding, len(bs.entries))
	copy(result, bs.entries)
	return result
}

// Len returns the number of bindings.
func (bs *Bindings) Len() int {
	if bs == nil {
		return 0
	}
	return len(bs.entries)
}

// Package mapper copies entries of a binding secret into a property map under new keys.
//
//	m := mapper.New(b.Secret(), props)
//	m.From("username").To("spring.datasource.username")
//	m.From("host", "port", "database").ToFunc("spring.datasource.url", func(v ...string) interface{} {
//		return fmt.Sprintf("jdbc:mysql://%s:%s/%s", v[0], v[1], v[2])
//	})
//
// A chain whose source keys are not all present in the secret does nothing.
package mapper

import (
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// Mapper maps entries of one secret into one property map.
type Mapper struct {
	secret     map[string]string
	properties properties.Properties
}

// New returns a Mapper reading from secret and writing to props.
func New(secret map[string]string, props properties.Properties) *Mapper {
	return &Mapper{secret: secret, properties: props}
}

// Source is a set of secret keys selected for mapping.
type Source struct {
	mapper *Mapper
	keys   []string
	values []string
}

// From selects the secret keys a value is built from.
func (m *Mapper) From(keys ...string) Source {
	s := Source{mapper: m, keys: keys}
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := m.secret[k]
		if !ok {
			return s
		}
		values = append(values, v)
	}
	if len(values) > 0 {
		s.values = values
	}
	return s
}

// Present reports whether every selected key exists in the secret.
func (s Source) Present() bool {
	return s.values != nil
}

// To copies the value of the single selected key to target.
// With several keys selected the first one is used.
func (s Source) To(target string) {
	if !s.Present() {
		return
	}
	s.mapper.properties[target] = s.values[0]
}

// ToFunc stores the result of fn, called with the values of the selected keys in order.
func (s Source) ToFunc(target string, fn func(values ...string) interface{}) {
	if !s.Present() {
		return
	}
	s.mapper.properties[target] = fn(s.values...)
}

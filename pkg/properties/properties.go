// Package properties holds the flat property map produced from bindings and the
// encoders handing it over to the application framework.
package properties

import (
	"sort"
)

// Properties maps dotted framework property keys, e.g. spring.datasource.url, to values.
//
// A single map is shared by every processor of a pass: the last write to a key wins.
type Properties map[string]interface{}

// Keys returns the property keys sorted alphabetically.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

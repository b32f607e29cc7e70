package pipeline

import (
	"strings"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// flattener exposes every binding independently of its kind, e.g.
//
//	k8s.bindings.db.type=MySQL
//	k8s.bindings.db.provider=bitnami
//	k8s.bindings.db.username=u
type flattener struct {
	prefix string
}

func (f *flattener) apply(bindings *binding.Bindings, props properties.Properties) {
	prefix := strings.TrimSuffix(f.prefix, ".")
	for _, b := range bindings.All() {
		base := b.Name() + "."
		if prefix != "" {
			base = prefix + "." + base
		}
		for k, v := range b.Secret() {
			props[base+k] = v
		}
		props[base+binding.TypeKey] = b.Kind()
		if b.Provider() != "" {
			props[base+binding.ProviderKey] = b.Provider()
		}
	}
}

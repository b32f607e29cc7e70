// Package kubernetes discovers bindings stored as Secrets in a namespace.
package kubernetes

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

// SecretTypePrefix marks Secrets carrying a service binding, e.g. servicebinding.io/MySQL.
// The remainder is the kind as is, kinds are matched case sensitively.
const SecretTypePrefix = "servicebinding.io/"

var log = logging.Logger("binding-kubernetes")

// Source reads bindings from the Secrets of a namespace.
type Source struct {
	client    client.Client
	namespace string
	selector  string
}

// NewSource returns a Source listing the Secrets of namespace matching the label selector.
// An empty selector matches every Secret.
func NewSource(c client.Client, namespace, selector string) *Source {
	return &Source{client: c, namespace: namespace, selector: selector}
}

// Load lists the Secrets and converts those carrying a binding kind, sorted by name.
//
// The kind is read from the "type" entry, falling back to the Secret type when it
// starts with servicebinding.io/. The optional "provider" entry becomes the provider.
func (s *Source) Load(ctx context.Context) (*binding.Bindings, error) {
	selector, err := labels.Parse(s.selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid label selector %q", s.selector)
	}

	secrets := &corev1.SecretList{}
	opts := []client.ListOption{client.MatchingLabelsSelector{Selector: selector}}
	if s.namespace != "" {
		opts = append(opts, client.InNamespace(s.namespace))
	}
	if err := s.client.List(ctx, secrets, opts...); err != nil {
		return nil, errors.Wrapf(err, "could not list secrets in namespace %q", s.namespace)
	}

	items := secrets.Items
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	var bindings []*binding.Binding
	for i := range items {
		b := FromSecret(&items[i])
		if b == nil {
			log.Trace("Secret is not a binding", "namespace", items[i].Namespace, "name", items[i].Name)
			continue
		}
		log.Debug("Discovered binding", "name", b.Name(), "kind", b.Kind())
		bindings = append(bindings, b)
	}
	return binding.NewBindings(bindings...)
}

// FromSecret converts a Secret into a Binding, or returns nil when the Secret has no kind.
func FromSecret(secret *corev1.Secret) *binding.Binding {
	data := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.Data {
		data[k] = string(v)
	}
	for k, v := range secret.StringData {
		data[k] = v
	}

	kind := strings.TrimSpace(data[binding.TypeKey])
	if kind == "" && strings.HasPrefix(string(secret.Type), SecretTypePrefix) {
		kind = strings.TrimPrefix(string(secret.Type), SecretTypePrefix)
	}
	if kind == "" {
		return nil
	}
	provider := strings.TrimSpace(data[binding.ProviderKey])
	delete(data, binding.TypeKey)
	delete(data, binding.ProviderKey)
	return binding.New(secret.Name, kind, provider, data)
}

// Package awssm discovers bindings stored as JSON secrets in AWS Secrets Manager.
package awssm

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/pkg/errors"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

var log = logging.Logger("binding-awssm")

// SecretsManagerAPI is the subset of the Secrets Manager client used by Source.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// Source reads bindings from the secrets whose name starts with a prefix.
type Source struct {
	client SecretsManagerAPI
	prefix string
}

// NewSource returns a Source backed by client.
func NewSource(client SecretsManagerAPI, prefix string) *Source {
	return &Source{client: client, prefix: prefix}
}

// NewFromConfig builds a Source using the default AWS credential chain.
func NewFromConfig(ctx context.Context, region, prefix string) (*Source, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return NewSource(secretsmanager.NewFromConfig(cfg), prefix), nil
}

// Load lists the secrets under the prefix and converts each into a Binding named after
// the remainder of the secret name. The "type" entry is required and "provider" is optional.
// Binary secrets, secrets that are not JSON objects and secrets without a type are skipped.
func (s *Source) Load(ctx context.Context) (*binding.Bindings, error) {
	names, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	var bindings []*binding.Binding
	for _, name := range names {
		b, err := s.get(ctx, name)
		if err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		log.Debug("Discovered binding", "name", b.Name(), "kind", b.Kind())
		bindings = append(bindings, b)
	}
	return binding.NewBindings(bindings...)
}

func (s *Source) list(ctx context.Context) ([]string, error) {
	input := &secretsmanager.ListSecretsInput{MaxResults: aws.Int32(100)}
	if s.prefix != "" {
		input.Filters = []types.Filter{
			{
				Key:    types.FilterNameStringTypeName,
				Values: []string{s.prefix},
			},
		}
	}

	var names []string
	paginator := secretsmanager.NewListSecretsPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list secrets with prefix %q", s.prefix)
		}
		for _, entry := range page.SecretList {
			// the name filter is not anchored, keep prefix matches only
			if entry.Name != nil && strings.HasPrefix(*entry.Name, s.prefix) {
				names = append(names, *entry.Name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Source) get(ctx context.Context, name string) (*binding.Binding, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch secret %q", name)
	}
	if out.SecretString == nil {
		log.Warning("Secret has no string value, skipping", "secret", name)
		return nil, nil
	}

	data, err := decode(*out.SecretString)
	if err != nil {
		log.Warning("Secret is not a JSON object, skipping", "secret", name, "error", err.Error())
		return nil, nil
	}

	kind := strings.TrimSpace(data[binding.TypeKey])
	if kind == "" {
		log.Warning("Secret has no type, skipping", "secret", name)
		return nil, nil
	}
	provider := strings.TrimSpace(data[binding.ProviderKey])
	delete(data, binding.TypeKey)
	delete(data, binding.ProviderKey)
	return binding.New(strings.TrimPrefix(name, s.prefix), kind, provider, data), nil
}

// decode reads a JSON object into secret entries. Numbers and booleans are
// rendered as written, nested values are kept as JSON text and nulls are dropped.
func decode(secret string) (map[string]string, error) {
	dec := json.NewDecoder(strings.NewReader(secret))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("null secret")
	}

	data := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			data[k] = v
		case json.Number:
			data[k] = v.String()
		case bool:
			data[k] = strconv.FormatBool(v)
		default:
			nested, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			data[k] = string(nested)
		}
	}
	return data, nil
}

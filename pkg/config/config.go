// Package config builds the configuration shared by the binding sources, the guard and the CLI.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Configuration keys. Every key can also be given as environment variable,
// upper cased with dots and dashes replaced by underscores, e.g. BINDINGS_MYSQL_ENABLED.
const (
	KeyRoot                    = "bindings.root"
	KeySource                  = "bindings.source"
	KeyFlattenedPrefix         = "bindings.flattened.prefix"
	KeyKubernetesNamespace     = "bindings.kubernetes.namespace"
	KeyKubernetesLabelSelector = "bindings.kubernetes.label-selector"
	KeyAWSRegion               = "bindings.aws.region"
	KeyAWSPrefix               = "bindings.aws.prefix"
	KeyCapabilities            = "bindings.capabilities"
	KeyClasspath               = "bindings.classpath"
	KeySQLDriverProbe          = "bindings.probe.sql-drivers"
)

// FlattenedKind is the pseudo kind whose guard flag, bindings.flattened.enabled,
// turns the flattening of bindings into k8s.bindings.* properties on and off.
const FlattenedKind = "flattened"

// ServiceBindingRootEnv is the environment variable pointing at the mounted bindings.
const ServiceBindingRootEnv = "SERVICE_BINDING_ROOT"

// Defaults
const (
	DefaultSource          = "fs"
	DefaultFlattenedPrefix = "k8s.bindings"
	DefaultAWSPrefix       = "bindings/"
)

// New returns a viper instance reading the environment and, if given, the config file.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyRoot, ServiceBindingRootEnv); err != nil {
		return nil, err
	}

	v.SetDefault(KeySource, DefaultSource)
	v.SetDefault(KeyFlattenedPrefix, DefaultFlattenedPrefix)
	v.SetDefault(KeyAWSPrefix, DefaultAWSPrefix)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", file)
		}
	}
	return v, nil
}

package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/binding/kubernetes"
	"github.com/redhat-developer/service-binding-properties/pkg/binding/volume"
	"github.com/redhat-developer/service-binding-properties/pkg/config"
)

// Binding sources selectable with --source.
const (
	SourceVolume     = "fs"
	SourceKubernetes = "kubernetes"
	SourceAWS        = "aws"
)

// Sources lists the supported binding sources.
var Sources = []string{SourceVolume, SourceKubernetes, SourceAWS}

// ErrUnknownSource is returned for a --source outside of Sources.
var ErrUnknownSource = errors.New("unknown binding source")

type loader interface {
	Load(ctx context.Context) (*binding.Bindings, error)
}

type volumeLoader string

func (root volumeLoader) Load(context.Context) (*binding.Bindings, error) {
	return volume.LoadDir(string(root))
}

func (o *rootOptions) loader(ctx context.Context, v *viper.Viper) (loader, error) {
	switch source := v.GetString(config.KeySource); source {
	case SourceVolume:
		return volumeLoader(v.GetString(config.KeyRoot)), nil
	case SourceKubernetes:
		c, err := o.newKubeClient()
		if err != nil {
			return nil, errors.Wrap(err, "could not create kubernetes client")
		}
		return kubernetes.NewSource(c, v.GetString(config.KeyKubernetesNamespace), v.GetString(config.KeyKubernetesLabelSelector)), nil
	case SourceAWS:
		s, err := o.newAWSSource(ctx, v.GetString(config.KeyAWSRegion), v.GetString(config.KeyAWSPrefix))
		if err != nil {
			return nil, errors.Wrap(err, "could not create aws secrets manager client")
		}
		return s, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSource, "%q, expected one of %v", source, Sources)
	}
}

package cli

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-developer/service-binding-properties/pkg/config"
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/metrics"
	"github.com/redhat-developer/service-binding-properties/pkg/pipeline"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

var processLog = logging.Logger("process")

type processOptions struct {
	*rootOptions
	format      string
	metricsFile string
}

func newProcessCommand(root *rootOptions) *cobra.Command {
	o := &processOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Print the properties derived from the discovered bindings",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			flags := map[string]string{
				config.KeySource:                  "source",
				config.KeyRoot:                    "root",
				config.KeyKubernetesNamespace:     "namespace",
				config.KeyKubernetesLabelSelector: "selector",
				config.KeyAWSRegion:               "aws-region",
				config.KeyAWSPrefix:               "aws-prefix",
				config.KeyClasspath:               "classpath",
			}
			for key, name := range flags {
				if err := o.config.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}

	cmd.Flags().String("source", config.DefaultSource, "binding source, one of fs, kubernetes, aws")
	cmd.Flags().String("root", "", "bindings directory of the fs source (default $"+config.ServiceBindingRootEnv+")")
	cmd.Flags().String("namespace", "", "namespace of the kubernetes source, all namespaces when empty")
	cmd.Flags().String("selector", "", "label selector of the kubernetes source")
	cmd.Flags().String("aws-region", "", "region of the aws source")
	cmd.Flags().String("aws-prefix", config.DefaultAWSPrefix, "secret name prefix of the aws source")
	cmd.Flags().StringSlice("classpath", nil, "directories holding the application jars, probed for JDBC drivers")
	cmd.Flags().StringVarP(&o.format, "format", "o", string(properties.FormatYAML), "output format, one of yaml, json, env, properties")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write the prometheus metrics of the run to this file")
	return cmd
}

func (o *processOptions) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	v := o.config

	format := properties.Format(o.format)
	if !validFormat(format) {
		return errors.Wrapf(properties.ErrUnknownFormat, "%q", o.format)
	}

	source, err := o.loader(ctx, v)
	if err != nil {
		return err
	}
	bindings, err := source.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load bindings")
	}
	processLog.Info("Loaded bindings", "source", v.GetString(config.KeySource), "bindings", bindings.Len())

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return err
	}

	g := guard.New(v)
	p := capabilities(v)
	b := pipeline.Builder().
		WithProcessors(processor.Defaults(g, p)...).
		WithRecorder(recorder)
	if g.Enabled(config.FlattenedKind) {
		b = b.WithFlattening(v.GetString(config.KeyFlattenedPrefix))
	}

	props := properties.Properties{}
	b.Build().Process(bindings, props)

	if err := properties.Encode(cmd.OutOrStdout(), props, format); err != nil {
		return err
	}

	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, registry); err != nil {
			return errors.Wrapf(err, "could not write metrics to %s", o.metricsFile)
		}
	}
	return nil
}

func validFormat(format properties.Format) bool {
	for _, f := range properties.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// capabilities probes what the application provides: the capabilities listed in
// the configuration and the driver jars of its classpath directories. The
// database/sql registry of this binary is only consulted when enabled explicitly.
func capabilities(v *viper.Viper) probe.Func {
	probes := []probe.Func{probe.Static(v.GetStringSlice(config.KeyCapabilities)...)}
	if dirs := v.GetStringSlice(config.KeyClasspath); len(dirs) > 0 {
		probes = append(probes, probe.Classpath(probe.DefaultDriverJars, dirs...))
	}
	if v.GetBool(config.KeySQLDriverProbe) {
		probes = append(probes, probe.SQLDrivers(probe.DefaultDriverAliases))
	}
	return probe.Any(probes...)
}

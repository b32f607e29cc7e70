// Package cli implements the service-binding-properties command line.
package cli

import (
	"context"
	"flag"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/redhat-developer/service-binding-properties/pkg/binding/awssm"
	"github.com/redhat-developer/service-binding-properties/pkg/config"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

// rootOptions carries the state shared by the sub commands.
type rootOptions struct {
	configFile string
	zap        zap.Options
	config     *viper.Viper

	newKubeClient func() (client.Client, error)
	newAWSSource  func(ctx context.Context, region, prefix string) (*awssm.Source, error)
}

// NewRootCommand returns the root command wired to the real Kubernetes and AWS clients.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{
		newKubeClient: kubeClient,
		newAWSSource:  awssm.NewFromConfig,
	})
}

func newRootCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service-binding-properties",
		Short: "Map service bindings to application properties",
		Long: `service-binding-properties discovers service bindings mounted in a
container, stored as Kubernetes Secrets or kept in AWS Secrets Manager and
translates them into the configuration properties understood by the
application frameworks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetLogger(zap.New(zap.UseFlagOptions(&o.zap), zap.WriteTo(cmd.ErrOrStderr())))

			v, err := config.New(o.configFile)
			if err != nil {
				return err
			}
			o.config = v
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&o.configFile, "config", "", "config file (yaml, json, toml or properties)")

	o.zap = zap.Options{Development: true}
	zapFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	o.zap.BindFlags(zapFlags)
	cmd.PersistentFlags().AddGoFlagSet(zapFlags)

	cmd.AddCommand(
		newProcessCommand(o),
		newKindsCommand(o),
		newVersionCommand(),
	)
	return cmd
}

// Execute runs the root command and exits with a non zero status on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func kubeClient() (client.Client, error) {
	cfg, err := ctrlconfig.GetConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg, client.Options{})
}

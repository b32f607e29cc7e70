package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/redhat-developer/service-binding-properties/pkg/config"
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
)

func newKindsCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the supported binding kinds and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := guard.New(o.config)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tFLAG\tENABLED")
			for _, p := range processor.Defaults(g, probe.None) {
				fmt.Fprintf(w, "%s\t%s\t%t\n", p.Kind(), g.Key(p.Kind()), p.Enabled())
			}
			fmt.Fprintf(w, "%s\t%s\t%t\n", "(flattened)", g.Key(config.FlattenedKind), g.Enabled(config.FlattenedKind))
			return w.Flush()
		},
	}
}

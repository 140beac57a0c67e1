package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/accsend/cmd/accsend/opts"
	"github.com/walteh/accsend/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewLocationsCmd creates a new locations command
func NewLocationsCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List locations that can take part in a transfer",
		Long: `Locations lists the ftrack locations a component can be sent from or to,
and whether accsyn has a site with the same name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			locations, err := o.Operator.Locations(ctx)
			if err != nil {
				return errors.Errorf("listing locations: %w", err)
			}

			console.Header("transferable locations")
			for _, l := range locations {
				if l.Mapped {
					console.Successf("%s (site %s)", l.Name, l.SiteID)
				} else {
					console.Warningf("%s has no accsyn site", l.Name)
				}
			}
			return nil
		},
	}

	return cmd
}

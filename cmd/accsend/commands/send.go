package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/accsend/cmd/accsend/opts"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/operation"
	"github.com/walteh/accsend/pkg/report"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

// NewSendCmd creates a new send command
func NewSendCmd(o *opts.RootOpts) *cobra.Command {
	var (
		source      string
		destination string
		entities    []string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send components to another location",
		Long: `Send relocates every component beneath the selected entities.
It will:
1. Harvest components from ftrack (projects, lists, shots, tasks, versions)
2. Resolve each path relative to its project
3. Submit one accsyn job per source, destination and project
4. Wait for the jobs and report one outcome per component

Interrupting the command aborts running jobs and prints what was reached.`,
		Example: `  accsend send --source NY --destination LA --entity show:1a2b3c
  accsend send --destination LDN --entity list:9f8e --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "send").Logger().WithContext(ctx)

			if output != "text" && output != "json" {
				return errors.Errorf("invalid output %q, want text or json", output)
			}

			selection := make([]tracker.Selection, 0, len(entities))
			for _, e := range entities {
				sel, err := tracker.ParseSelection(e)
				if err != nil {
					return err
				}
				selection = append(selection, sel)
			}

			req := operation.Request{
				Selection:           selection,
				SourceLocation:      source,
				DestinationLocation: destination,
			}

			console := log.FromContext(ctx)
			from := source
			if from == "" {
				from = "component locations"
			}
			console.Header(fmt.Sprintf("sending %d selection(s) from %s to %s", len(selection), from, destination))

			runner := operation.NewRunner(zerolog.Ctx(ctx))
			rep, err := runner.Run(ctx, func(ctx context.Context) (*report.Report, error) {
				return o.Operator.Send(ctx, req)
			})

			if rep != nil {
				var renderErr error
				if output == "json" {
					renderErr = report.JSON(cmd.OutOrStdout(), rep)
				} else {
					renderErr = report.Render(cmd.OutOrStdout(), rep)
				}
				if renderErr != nil {
					return renderErr
				}
			}

			if err != nil {
				return errors.Errorf("sending components: %w", err)
			}
			if ctx.Err() != nil {
				return errors.Errorf("interrupted: %w", ctx.Err())
			}
			if !rep.Success {
				return errors.Errorf("transfer incomplete: %s", rep.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source location (defaults to each component's location)")
	cmd.Flags().StringVar(&destination, "destination", "", "destination location")
	cmd.Flags().StringArrayVar(&entities, "entity", nil, "selected entity as type:id (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "report format: text or json")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("entity")

	return cmd
}

package cmd

import (
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

// projectionCmd represents the projection related commands
var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Commands to manage projections",
	Long: `Commands to manage projections.

A projection names an artifact computed from several revisions, possibly spanning several graphs.`,
}

var projectionAdd = &cobra.Command{
	Use:   "add",
	Short: "Add a projection",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.AddProjection(model.Projection{
				ID:      revmonFlags.projection.ID,
				Sources: revmonFlags.projection.Sources,
				Target:  revmonFlags.projection.Target,
			})
		})
	},
}

var projectionRemove = &cobra.Command{
	Use:   "remove",
	Short: "Remove a projection",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.RemoveProjection(revmonFlags.projection.ID)
		})
	},
}

var projectionList = &cobra.Command{
	Use:     "list",
	Short:   "List the projections of a system",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			return render(cmd.OutOrStdout(), sys.Projections(), projectionsFormatter)
		})
	},
}

func init() {
	markRequired(projectionAdd, addProjectionFlag(projectionAdd))
	markRequired(projectionAdd, addProjectionSourcesFlags(projectionAdd)...)
	markRequired(projectionRemove, addProjectionFlag(projectionRemove))

	for _, c := range []*cobra.Command{projectionAdd, projectionRemove, projectionList} {
		projectionCmd.AddCommand(c)
	}
	rootCmd.AddCommand(projectionCmd)
}

// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Show the region surrounding a revision",
	Long: `Show the region surrounding a revision along an axis:

  TIME        the path back to the root, at most depth steps long
  SPACE       the heads of the branches forking from the ancestor found depth steps back
  RELATIONAL  the revisions related to the revision
  PROJECTIVE  the projections computed from the revision

The depth only applies to TIME and SPACE. Use -1 for no bound.`,
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			axis, err := model.ParseAxis(revmonFlags.region.Axis)
			if err != nil {
				return err
			}
			var region model.Region
			if axis.IsLocal() {
				r, e := sys.FindRevision(revmonFlags.revision.ID)
				if e != nil {
					return e
				}
				region, err = sys.FindLocalRegion(r.GraphID, r.ID, axis, revmonFlags.region.Depth)
			} else {
				region, err = sys.FindGlobalRegion(revmonFlags.revision.ID, axis)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), region, regionFormatter)
		})
	},
}

var lcaCmd = &cobra.Command{
	Use:   "lca",
	Short: "Show the least common ancestor of two revisions of a graph",
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			g, err := sys.Graph(revmonFlags.graph.ID)
			if err != nil {
				return err
			}
			lca, err := g.LeastCommonAncestor(revmonFlags.lca.A, revmonFlags.lca.B)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), []model.Revision{lca}, revisionsFormatter)
		})
	},
}

func init() {
	markRequired(regionCmd, addRevisionFlag(regionCmd), addRegionFlags(regionCmd))
	rootCmd.AddCommand(regionCmd)

	markRequired(lcaCmd, addGraphFlag(lcaCmd))
	markRequired(lcaCmd, addLCAFlags(lcaCmd)...)
	rootCmd.AddCommand(lcaCmd)
}

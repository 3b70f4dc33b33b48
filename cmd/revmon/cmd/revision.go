// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

// revisionCmd represents the revision related commands
var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "Commands to manage revisions",
	Long: `Commands to manage the revisions of a graph.

Revision ids must be unique across the whole system.`,
}

func revisionFromFlags() model.Revision {
	return model.Revision{
		GraphID:     revmonFlags.graph.ID,
		ID:          revmonFlags.revision.ID,
		Description: revmonFlags.revision.Description,
		Location:    revmonFlags.revision.Location,
		Payload:     revmonFlags.revision.Payload,
	}
}

func mutationOptions() []core.MutationOption {
	if revmonFlags.revision.SkipValidation {
		return []core.MutationOption{core.SkipValidation()}
	}
	return nil
}

var revisionAdd = &cobra.Command{
	Use:   "add",
	Short: "Add a revision to a graph",
	Long: `Add a revision to a graph.

The new revision succeeds its predecessor. The first revision of an empty graph has no predecessor.`,
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			r := revisionFromFlags()
			if revmonFlags.revision.Predecessor == "" {
				return sys.AddRevision(r.GraphID, r, mutationOptions()...)
			}
			// the revision alone is a second root until the edge is added
			if err := sys.AddRevision(r.GraphID, r, core.SkipValidation()); err != nil {
				return err
			}
			return sys.AddEdge(r.GraphID, model.NewSuccessor(revmonFlags.revision.Predecessor, r.ID), mutationOptions()...)
		})
	},
}

var revisionMerge = &cobra.Command{
	Use:   "merge",
	Short: "Add a revision joining two branches",
	Long: `Add a revision joining two branches of a graph.

The join is recorded with a merge edge from the least common ancestor of both branch heads.`,
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			r := revisionFromFlags()
			return sys.AddRevisionWithUnification(r.GraphID, r,
				model.NewSuccessor(revmonFlags.merge.From, r.ID),
				model.NewSuccessor(revmonFlags.merge.With, r.ID),
			)
		})
	},
}

var revisionRemove = &cobra.Command{
	Use:   "remove",
	Short: "Remove a revision",
	Long:  "Remove a revision with its edges. Relations and projections referring to it are removed too.",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.RemoveRevision(revmonFlags.revision.ID, mutationOptions()...)
		})
	},
}

var revisionGet = &cobra.Command{
	Use:   "get",
	Short: "Show a revision with its edges, relations and projections",
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			id := revmonFlags.revision.ID
			var (
				details revisionDetails
				err     error
			)
			if details.Revision, err = sys.FindRevision(id); err != nil {
				return err
			}
			if details.Edges, err = sys.FindEdges(id); err != nil {
				return err
			}
			if details.Relations, err = sys.FindRelations(id); err != nil {
				return err
			}
			if details.Projections, err = sys.FindProjections(id); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), details, revisionDetailsFormatter)
		})
	},
}

var revisionPath = &cobra.Command{
	Use:   "path",
	Short: "Show the path from a revision back to the root",
	Long: `Show the path from a revision back to the root of its graph, at most depth steps long.

A merged revision steps directly to the least common ancestor of the branches it joins.`,
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			r, err := sys.FindRevision(revmonFlags.revision.ID)
			if err != nil {
				return err
			}
			g, err := sys.Graph(r.GraphID)
			if err != nil {
				return err
			}
			path, err := g.PathToRoot(r.ID, revmonFlags.region.Depth)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), path, revisionsFormatter)
		})
	},
}

func init() {
	markRequired(revisionAdd, addGraphFlag(revisionAdd), addRevisionFlag(revisionAdd))
	addRevisionDetailsFlags(revisionAdd)
	addPredecessorFlag(revisionAdd)
	addSkipValidationFlag(revisionAdd)

	markRequired(revisionMerge, addGraphFlag(revisionMerge), addRevisionFlag(revisionMerge))
	markRequired(revisionMerge, addMergeFlags(revisionMerge)...)
	addRevisionDetailsFlags(revisionMerge)

	markRequired(revisionRemove, addRevisionFlag(revisionRemove))
	addSkipValidationFlag(revisionRemove)

	markRequired(revisionGet, addRevisionFlag(revisionGet))

	markRequired(revisionPath, addRevisionFlag(revisionPath))
	addDepthFlag(revisionPath)

	for _, c := range []*cobra.Command{revisionAdd, revisionMerge, revisionRemove, revisionGet, revisionPath} {
		revisionCmd.AddCommand(c)
	}
	rootCmd.AddCommand(revisionCmd)
}

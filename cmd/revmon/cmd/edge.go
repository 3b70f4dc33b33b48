package cmd

import (
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

// edgeCmd represents the edge related commands
var edgeCmd = &cobra.Command{
	Use:   "edge",
	Short: "Commands to manage the edges of a graph",
	Long: `Commands to manage the SUCCESSOR and MERGE edges of a graph.

Use "revmon revision merge" to join two branches: a join needs a MERGE edge next to its two SUCCESSOR edges.`,
}

func edgeFromFlags() (model.Edge, error) {
	label, err := model.ParseEdgeLabel(revmonFlags.edge.Label)
	if err != nil {
		return model.Edge{}, err
	}
	return model.Edge{Source: revmonFlags.edge.Source, Target: revmonFlags.edge.Target, Label: label}, nil
}

var edgeAdd = &cobra.Command{
	Use:   "add",
	Short: "Add an edge between two revisions of a graph",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			e, err := edgeFromFlags()
			if err != nil {
				return err
			}
			return sys.AddEdge(revmonFlags.graph.ID, e, mutationOptions()...)
		})
	},
}

var edgeRemove = &cobra.Command{
	Use:   "remove",
	Short: "Remove an edge of a graph",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			e, err := edgeFromFlags()
			if err != nil {
				return err
			}
			return sys.RemoveEdge(revmonFlags.graph.ID, e, mutationOptions()...)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{edgeAdd, edgeRemove} {
		markRequired(c, addGraphFlag(c))
		markRequired(c, addEdgeFlags(c)...)
		addSkipValidationFlag(c)
		edgeCmd.AddCommand(c)
	}
	rootCmd.AddCommand(edgeCmd)
}

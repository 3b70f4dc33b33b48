// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph related commands
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Commands to manage revision graphs",
	Long: `Commands to manage the revision graphs of a system.

Each graph records the history of one repository. A new graph is empty: its first revision becomes its root.`,
}

var graphInit = &cobra.Command{
	Use:   "init",
	Short: "Create an empty revision graph",
	Long:  "Create an empty revision graph. The system is created on first use.",
	Run: func(cmd *cobra.Command, args []string) {
		update(true, func(sys *core.System) error {
			return sys.InitNewGraph(revmonFlags.graph.ID)
		})
	},
}

var graphRemove = &cobra.Command{
	Use:   "remove",
	Short: "Remove a revision graph",
	Long:  "Remove a revision graph, together with all relations and projections referring to its revisions",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.RemoveGraph(revmonFlags.graph.ID)
		})
	},
}

var graphList = &cobra.Command{
	Use:     "list",
	Short:   "List the revision graphs of a system",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			return render(cmd.OutOrStdout(), sys.GraphIDs(), namesFormatter)
		})
	},
}

var graphShow = &cobra.Command{
	Use:   "show",
	Short: "Show the revisions and edges of a graph",
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			g, err := sys.Graph(revmonFlags.graph.ID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.Describe(), FormatterFunc(func(w io.Writer, data interface{}) error {
				descriptor := data.(model.GraphDescriptor)
				fmt.Fprintln(w, color.YellowString(descriptor.ID))
				for _, r := range descriptor.Revisions {
					formatRevision(w, r)
				}
				for _, e := range descriptor.Edges {
					fmt.Fprintf(w, "%s -%s-> %s\n", e.Source, color.GreenString(string(e.Label)), e.Target)
				}
				return nil
			}))
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{graphInit, graphRemove, graphShow} {
		markRequired(c, addGraphFlag(c))
		graphCmd.AddCommand(c)
	}
	graphCmd.AddCommand(graphList)

	rootCmd.AddCommand(graphCmd)
}

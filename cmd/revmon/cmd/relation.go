package cmd

import (
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/spf13/cobra"
)

// relationCmd represents the relation related commands
var relationCmd = &cobra.Command{
	Use:   "relation",
	Short: "Commands to manage relations between revisions",
	Long:  "Commands to manage relations, pointing from a revision to another one, usually in another graph",
}

func relationFromFlags() model.Relation {
	return model.Relation{
		FromGraph:    revmonFlags.relation.FromGraph,
		ToGraph:      revmonFlags.relation.ToGraph,
		FromRevision: revmonFlags.relation.FromRevision,
		ToRevision:   revmonFlags.relation.ToRevision,
		Payload:      revmonFlags.relation.Payload,
	}
}

var relationAdd = &cobra.Command{
	Use:   "add",
	Short: "Relate two revisions",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.AddRelation(relationFromFlags())
		})
	},
}

var relationRemove = &cobra.Command{
	Use:   "remove",
	Short: "Remove a relation",
	Run: func(cmd *cobra.Command, args []string) {
		update(false, func(sys *core.System) error {
			return sys.RemoveRelation(relationFromFlags())
		})
	},
}

var relationList = &cobra.Command{
	Use:     "list",
	Short:   "List the relations of a system",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			return render(cmd.OutOrStdout(), sys.Relations(), relationsFormatter)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{relationAdd, relationRemove} {
		markRequired(c, addRelationFlags(c)...)
		relationCmd.AddCommand(c)
	}
	relationCmd.AddCommand(relationList)
	rootCmd.AddCommand(relationCmd)
}

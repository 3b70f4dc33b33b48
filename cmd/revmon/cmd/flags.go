// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		store     string
		path      string
		logLevel  string
		lookahead int
		system    string
		output    string
	}
	graph struct {
		ID string
	}
	revision struct {
		ID             string
		Description    string
		Location       string
		Payload        string
		Predecessor    string
		SkipValidation bool
	}
	merge struct {
		From string
		With string
	}
	edge struct {
		Source string
		Target string
		Label  string
	}
	relation struct {
		FromGraph    string
		ToGraph      string
		FromRevision string
		ToRevision   string
		Payload      string
	}
	projection struct {
		ID      string
		Sources []string
		Target  string
	}
	region struct {
		Axis  string
		Depth int
	}
	lca struct {
		A string
		B string
	}
	archive struct {
		File    string
		Force   bool
		ToStore string
		ToPath  string
	}
}

var revmonFlags = flagsT{}

func addGraphFlag(cmd *cobra.Command) string {
	graph := "graph"
	cmd.Flags().StringVar(&revmonFlags.graph.ID, graph, "", "The id of the revision graph")
	return graph
}

func addRevisionFlag(cmd *cobra.Command) string {
	revision := "revision"
	cmd.Flags().StringVar(&revmonFlags.revision.ID, revision, "", "The id of the revision, unique across the system")
	return revision
}

func addRevisionDetailsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&revmonFlags.revision.Description, "description", "", "A description of the revision")
	cmd.Flags().StringVar(&revmonFlags.revision.Location, "location", "", "Where the artifact of this revision is located")
	cmd.Flags().StringVar(&revmonFlags.revision.Payload, "payload", "", "An opaque payload attached to the revision")
}

func addPredecessorFlag(cmd *cobra.Command) string {
	predecessor := "predecessor"
	cmd.Flags().StringVar(&revmonFlags.revision.Predecessor, predecessor, "",
		"The revision this new revision succeeds. Leave empty to create the root of an empty graph")
	return predecessor
}

func addSkipValidationFlag(cmd *cobra.Command) string {
	skip := "skip-validation"
	cmd.Flags().BoolVar(&revmonFlags.revision.SkipValidation, skip, false,
		"Do not check invariants after the change. The archived system must then be repaired before it can be loaded again")
	return skip
}

func addMergeFlags(cmd *cobra.Command) []string {
	from, with := "from", "with"
	cmd.Flags().StringVar(&revmonFlags.merge.From, from, "", "The head of the first branch to join")
	cmd.Flags().StringVar(&revmonFlags.merge.With, with, "", "The head of the second branch to join")
	return []string{from, with}
}

func addEdgeFlags(cmd *cobra.Command) []string {
	source, target := "source", "target"
	cmd.Flags().StringVar(&revmonFlags.edge.Source, source, "", "The source revision of the edge")
	cmd.Flags().StringVar(&revmonFlags.edge.Target, target, "", "The target revision of the edge")
	cmd.Flags().StringVar(&revmonFlags.edge.Label, "label", "SUCCESSOR", "The label of the edge: SUCCESSOR or MERGE")
	return []string{source, target}
}

func addRelationFlags(cmd *cobra.Command) []string {
	required := []string{"from-graph", "to-graph", "from", "to"}
	cmd.Flags().StringVar(&revmonFlags.relation.FromGraph, required[0], "", "The graph of the source revision")
	cmd.Flags().StringVar(&revmonFlags.relation.ToGraph, required[1], "", "The graph of the target revision")
	cmd.Flags().StringVar(&revmonFlags.relation.FromRevision, required[2], "", "The source revision")
	cmd.Flags().StringVar(&revmonFlags.relation.ToRevision, required[3], "", "The target revision")
	cmd.Flags().StringVar(&revmonFlags.relation.Payload, "payload", "", "An opaque payload attached to the relation")
	return required
}

func addProjectionFlag(cmd *cobra.Command) string {
	projection := "projection"
	cmd.Flags().StringVar(&revmonFlags.projection.ID, projection, "", "The id of the projection")
	return projection
}

func addProjectionSourcesFlags(cmd *cobra.Command) []string {
	source, target := "source", "target"
	cmd.Flags().StringSliceVar(&revmonFlags.projection.Sources, source, nil, "The revisions the projection is computed from (repeatable, ordered)")
	cmd.Flags().StringVar(&revmonFlags.projection.Target, target, "", "The name of the artifact computed by the projection")
	return []string{source, target}
}

func addRegionFlags(cmd *cobra.Command) string {
	axis := "axis"
	cmd.Flags().StringVar(&revmonFlags.region.Axis, axis, "", "The axis of the region: TIME, SPACE, RELATIONAL or PROJECTIVE")
	addDepthFlag(cmd)
	return axis
}

func addDepthFlag(cmd *cobra.Command) string {
	depth := "depth"
	cmd.Flags().IntVar(&revmonFlags.region.Depth, depth, 1, "How far to explore the history. Use -1 for no bound")
	return depth
}

func addLCAFlags(cmd *cobra.Command) []string {
	a, b := "a", "b"
	cmd.Flags().StringVar(&revmonFlags.lca.A, a, "", "The first revision")
	cmd.Flags().StringVar(&revmonFlags.lca.B, b, "", "The second revision")
	return []string{a, b}
}

func addFileFlag(cmd *cobra.Command, usage string) string {
	file := "file"
	cmd.Flags().StringVar(&revmonFlags.archive.File, file, "", usage)
	return file
}

func addForceFlag(cmd *cobra.Command) string {
	force := "force"
	cmd.Flags().BoolVar(&revmonFlags.archive.Force, force, false, "Replace the archived system if it exists already")
	return force
}

func addDestinationStoreFlags(cmd *cobra.Command) []string {
	toStore, toPath := "to-store", "to-path"
	cmd.Flags().StringVar(&revmonFlags.archive.ToStore, toStore, "", "The backend of the destination store: localfs or badger")
	cmd.Flags().StringVar(&revmonFlags.archive.ToPath, toPath, "", "The location of the destination store")
	return []string{toStore, toPath}
}

func markRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			logFatalln(err)
		}
	}
}

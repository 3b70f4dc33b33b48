package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/model"
	"gopkg.in/yaml.v2"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// Formatter renders the result of a command
type Formatter interface {
	Format(io.Writer, interface{}) error
}

// FormatterFunc is a function usable as a Formatter
type FormatterFunc func(io.Writer, interface{}) error

// Format renders data
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var yamlFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
})

// render writes data with the formatter selected by --output. The text formatter is specific to each command.
func render(w io.Writer, data interface{}, text Formatter) error {
	switch revmonFlags.root.output {
	case outputText, "":
		return text.Format(w, data)
	case outputYAML:
		return yamlFormatter.Format(w, data)
	default:
		return status.ErrInvalidArgument.Wrapf("unknown output format %q", revmonFlags.root.output)
	}
}

func formatRevision(w io.Writer, r model.Revision) {
	fmt.Fprintf(w, "%s\t%s", color.CyanString(r.ID), color.YellowString(r.GraphID))
	if r.Description != "" {
		fmt.Fprintf(w, "\t%s", r.Description)
	}
	if r.Location != "" {
		fmt.Fprintf(w, "\t%s", color.HiBlackString(r.Location))
	}
	fmt.Fprintln(w)
}

var revisionsFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	for _, r := range data.([]model.Revision) {
		formatRevision(w, r)
	}
	return nil
})

var namesFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	for _, name := range data.([]string) {
		fmt.Fprintln(w, name)
	}
	return nil
})

var regionFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	region := data.(model.Region)
	cardinality := fmt.Sprint(region.Cardinality)
	if region.Cardinality == model.UnboundedCardinality {
		cardinality = "unbounded"
	}
	fmt.Fprintf(w, "%s region (%s)\n", color.MagentaString(string(region.Axis)), cardinality)
	for _, r := range region.Participants {
		formatRevision(w, r)
	}
	return nil
})

// revisionDetails is everything known about a revision
type revisionDetails struct {
	Revision    model.Revision     `yaml:"revision"`
	Edges       []model.Edge       `yaml:"edges"`
	Relations   []model.Relation   `yaml:"relations"`
	Projections []model.Projection `yaml:"projections"`
}

var revisionDetailsFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	details := data.(revisionDetails)
	formatRevision(w, details.Revision)
	for _, e := range details.Edges {
		fmt.Fprintf(w, "  %s -%s-> %s\n", e.Source, color.GreenString(string(e.Label)), e.Target)
	}
	for _, r := range details.Relations {
		fmt.Fprintf(w, "  %s.%s => %s.%s\n", r.FromGraph, r.FromRevision, r.ToGraph, r.ToRevision)
	}
	for _, p := range details.Projections {
		fmt.Fprintf(w, "  %s: %s -> %s\n", color.MagentaString(p.ID), strings.Join(p.Sources, ", "), p.Target)
	}
	return nil
})

var projectionsFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	for _, p := range data.([]model.Projection) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", color.MagentaString(p.ID), strings.Join(p.Sources, ","), color.HiBlackString(p.Target))
	}
	return nil
})

var relationsFormatter = FormatterFunc(func(w io.Writer, data interface{}) error {
	for _, r := range data.([]model.Relation) {
		fmt.Fprintf(w, "%s.%s => %s.%s\n", color.YellowString(r.FromGraph), r.FromRevision, color.YellowString(r.ToGraph), r.ToRevision)
	}
	return nil
})

// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// systemCmd represents the commands working on whole archived systems
var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Commands to manage archived systems",
	Long: `Commands to manage the systems archived in a store.

The system to work on is set with --system, the store with --store and --path.`,
}

var systemList = &cobra.Command{
	Use:     "list",
	Short:   "List the archived systems",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		if err != nil {
			exitOn("open session", err)
			return
		}
		defer sess.close()

		names, err := core.ListSystems(sess.ctx, sess.store)
		if err != nil {
			exitOn("list systems", err)
			return
		}
		if err = render(cmd.OutOrStdout(), names, namesFormatter); err != nil {
			exitOn("list systems", err)
		}
	},
}

var systemDelete = &cobra.Command{
	Use:   "delete",
	Short: "Delete an archived system",
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		if err != nil {
			exitOn("open session", err)
			return
		}
		defer sess.close()

		if err = core.DeleteSystem(sess.ctx, sess.store, sess.name); err != nil {
			exitOn("delete system "+sess.name, err)
		}
	},
}

var systemCopy = &cobra.Command{
	Use:   "copy",
	Short: "Copy an archived system to another store",
	Long:  "Copy an archived system to another store. The copy fails if the system exists in the destination store.",
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		if err != nil {
			exitOn("open session", err)
			return
		}
		defer sess.close()

		destination, closer, err := openStore(revmonFlags.archive.ToStore, revmonFlags.archive.ToPath, sess.logger)
		if err != nil {
			exitOn("open destination store", err)
			return
		}
		defer closer()

		if err = core.CopySystem(sess.ctx, sess.store, destination, sess.name); err != nil {
			exitOn("copy system "+sess.name, err)
			return
		}
		sess.logger.Info("system copied", zap.String("system", sess.name), zap.Stringer("from", sess.store), zap.Stringer("to", destination))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that an archived system is consistent",
	Long: `Check that an archived system is consistent.

Cycles are looked for up to --lookahead steps.`,
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			if err := sys.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("valid"))
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an archived system in its text form",
	Run: func(cmd *cobra.Command, args []string) {
		query(func(sys *core.System) error {
			var w io.Writer = cmd.OutOrStdout()
			if revmonFlags.archive.File != "" {
				f, err := os.Create(revmonFlags.archive.File)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err := fmt.Fprintln(w, sys.Serialize())
			return err
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Archive a system from its text form",
	Long: `Archive a system from its text form.

The system is validated before it is archived. An existing system is only replaced with --force.`,
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		if err != nil {
			exitOn("open session", err)
			return
		}
		defer sess.close()

		doc, err := os.ReadFile(revmonFlags.archive.File)
		if err != nil {
			exitOn("read "+revmonFlags.archive.File, err)
			return
		}
		sys, err := core.Parse(string(doc), sess.options()...)
		if err != nil {
			exitOn("parse "+revmonFlags.archive.File, err)
			return
		}
		exists, err := sess.exists()
		if err != nil {
			exitOn("import system "+sess.name, err)
			return
		}
		if exists && !revmonFlags.archive.Force {
			exitOn("import system "+sess.name, status.ErrInvalidArgument.Wrapf("system %q exists already in %v", sess.name, sess.store))
			return
		}
		if err = sess.save(sys); err != nil {
			exitOn("save system "+sess.name, err)
		}
	},
}

func init() {
	markRequired(systemCopy, addDestinationStoreFlags(systemCopy)[0])
	for _, c := range []*cobra.Command{systemList, systemDelete, systemCopy} {
		systemCmd.AddCommand(c)
	}
	rootCmd.AddCommand(systemCmd)

	addFileFlag(exportCmd, "The file to write to. Defaults to the standard output")
	markRequired(importCmd, addFileFlag(importCmd, "The file to read the system from"))
	addForceFlag(importCmd)
	rootCmd.AddCommand(validateCmd, exportCmd, importCmd)
}

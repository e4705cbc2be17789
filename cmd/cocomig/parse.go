package main

import (
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/diagfmt"
	"cocomig/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.py",
	Short: "Parse a Python source file and print its concrete syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Bool("trivia", false, "show whitespace and comments in tree output")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Errorf("failed to get format flag: %w", err)
	}
	withTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return errors.Errorf("failed to get trivia flag: %w", err)
	}
	switch format {
	case "tree", "json":
	default:
		return errors.Errorf("unknown format: %s", format)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, g.maxFindings)
	if err != nil {
		return errors.Errorf("parsing failed: %w", err)
	}
	switch {
	case result.Bag.Len() == 0:
	case format == "json":
		result.Bag.Sort()
		if err := diagfmt.JSON(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	default:
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   g.color.enabled(os.Stderr),
			Context: 1,
		})
	}
	if result.Root == nil {
		return &exitError{code: driver.ExitFailure}
	}

	if format == "json" {
		return diagfmt.FormatTreeJSON(cmd.OutOrStdout(), result.Root)
	}
	return diagfmt.FormatTreePretty(cmd.OutOrStdout(), result.Root, withTrivia)
}

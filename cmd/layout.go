package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/sortbot/internal/scene"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect and validate field layouts",
}

var layoutCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a layout file (defaults to --layout, then the built-in layout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveLayoutPath(cmd)
		if len(args) == 1 {
			path = args[0]
		}

		sc, err := scene.Load(path)
		if err != nil {
			var verr *scene.ValidationError
			if errors.As(err, &verr) {
				name := path
				if name == "" {
					name = "built-in layout"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d problem(s)\n", name, len(verr.Problems))
				for _, p := range verr.Problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
				}
				return fmt.Errorf("invalid layout")
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "OK  field %dx%d, item %dx%d, origin (%d,%d)\n",
			sc.Field.W, sc.Field.H, sc.ItemSize.W, sc.ItemSize.H, sc.Origin.X, sc.Origin.Y)
		fmt.Fprintf(out, "    %-14s %s\n", sc.Helper.Label, sc.Helper.Rect)
		for _, b := range sc.Bins() {
			fmt.Fprintf(out, "    %-14s %s\n", b.Name, b.Region)
		}
		return nil
	},
}

var layoutPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the built-in layout as a starting point for custom layouts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.OutOrStdout().Write(scene.DefaultYAML())
	},
}

func init() {
	layoutCmd.AddCommand(layoutCheckCmd)
	layoutCmd.AddCommand(layoutPrintCmd)
}

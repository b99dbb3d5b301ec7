package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sortbot",
	Short: "Sort rubbish and teach a robot helper",
	Long: "SortBot is a terminal game: drag rubbish into the garbage, recycling and compost bins,\n" +
		"or drop it on the robot helper, which learns from every item you sort.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SORTBOT_DB env var)")
	rootCmd.PersistentFlags().String("layout", "", "Path to a field layout YAML file (overrides SORTBOT_LAYOUT env var)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for item order and robot guesses (random when unset)")
	rootCmd.PersistentFlags().Bool("no-splash", false, "Skip the welcome splash")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SORTBOT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveLayoutPath returns the layout path from --layout, then
// SORTBOT_LAYOUT. Empty means the embedded default.
func resolveLayoutPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("layout"); p != "" {
		return p
	}
	return os.Getenv("SORTBOT_LAYOUT")
}

// loadScene builds the play field from the resolved layout.
func loadScene(cmd *cobra.Command) (*scene.Scene, error) {
	sc, err := scene.Load(resolveLayoutPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	return sc, nil
}

// resolveSource returns a seeded source when --seed is set, nil otherwise.
func resolveSource(cmd *cobra.Command) dice.Source {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	return dice.NewSeeded(seed)
}

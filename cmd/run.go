package cmd

import (
	"fmt"

	"github.com/abhisek/sortbot/internal/app"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	sc, err := loadScene(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		EventRepo:  st.EventRepo(),
		Scene:      sc,
		Source:     resolveSource(cmd),
		SkipSplash: noSplash,
	})
}

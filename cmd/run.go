package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/app"
	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/screen"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file.
	log := logger.Nop()
	if dir, err := store.DataDir(); err == nil {
		if fl, err := logger.NewFile(filepath.Join(dir, "studentsim.log")); err == nil {
			log = fl
			defer log.Sync()
		} else {
			fmt.Fprintln(os.Stderr, "Log file unavailable:", err)
		}
	}

	eventRepo := st.EventRepo()
	provider, _ := envProvider(ctx, eventRepo, log)
	if provider == nil {
		fmt.Fprintln(os.Stderr, "No AI provider configured: running offline with mock data.")
	}

	return app.Run(app.Options{
		Services: screen.Services{
			Session: session.NewService(session.Deps{Provider: provider, Logger: log}),
			Gallery: gallery.NewService(st.GalleryRepo()),
			Prompts: st.PromptRepo(),
		},
	})
}

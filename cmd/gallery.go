package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/render"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Browse, publish and remix shared classroom sessions",
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := gallery.NewService(s.GalleryRepo()).List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list gallery: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("Nothing published yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-32s  %-16s  %s\n", "ID", "Submitted", "Title", "By", "Responses")
		fmt.Println(strings.Repeat("─", 90))
		for _, e := range entries {
			fmt.Printf("%-5d  %-16s  %-32s  %-16s  %d\n",
				e.ID,
				e.SubmittedAt.Local().Format("2006-01-02 15:04"),
				truncate(e.Title, 32),
				truncate(e.SubmittedBy, 16),
				len(e.Responses),
			)
		}
		return nil
	},
}

var galleryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a published session with its analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEntry(cmd, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Title:     %s\n", e.Title)
		fmt.Printf("By:        %s\n", e.SubmittedBy)
		fmt.Printf("Time:      %s\n", e.SubmittedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Question:  %s\n\n", e.Question)
		for _, r := range e.Responses {
			fmt.Printf("Student %d: %s\n\n", r.ID, r.Content)
		}
		if e.Analysis != nil {
			sep := strings.Repeat("─", 60)
			fmt.Println(sep)
			fmt.Printf("Follow-up: %s\n", e.Analysis.Question)
			fmt.Println(sep)
			fmt.Println(render.Plain(render.Render(e.Analysis.Response)))
		}
		return nil
	},
}

var gallerySubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Publish a session (JSON from `simulate --json` or `gallery remix`) to the gallery",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		by, _ := cmd.Flags().GetString("by")

		raw, err := readInput(cmd, path)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		st, err := decodeBatch(raw, "")
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := gallery.NewService(s.GalleryRepo()).Submit(cmd.Context(), title, by, st)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		fmt.Printf("Published %q as #%d.\n", e.Title, e.ID)
		return nil
	},
}

var galleryRemixCmd = &cobra.Command{
	Use:   "remix <id>",
	Short: "Print a published session as session JSON to continue working on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEntry(cmd, args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), gallery.Remix(*e))
	},
}

func loadEntry(cmd *cobra.Command, arg string) (*gallery.Entry, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ID %q: %w", arg, err)
	}

	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	e, err := gallery.NewService(s.GalleryRepo()).Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func init() {
	galleryListCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
	gallerySubmitCmd.Flags().StringP("file", "f", "", "Session JSON file (default stdin)")
	gallerySubmitCmd.Flags().StringP("title", "t", "", "Title (defaults to the question)")
	gallerySubmitCmd.Flags().String("by", "", "Your name (defaults to Anonymous)")

	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryShowCmd)
	galleryCmd.AddCommand(gallerySubmitCmd)
	galleryCmd.AddCommand(galleryRemixCmd)
}

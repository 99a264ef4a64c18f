package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/analysis"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage follow-up prompts",
}

var promptsSuggestedCmd = &cobra.Command{
	Use:   "suggested",
	Short: "List the built-in suggested follow-up prompts",
	Run: func(cmd *cobra.Command, args []string) {
		for i, cat := range analysis.SuggestedPrompts() {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(cat.Category)
			fmt.Println(strings.Repeat("─", 60))
			for _, p := range cat.Prompts {
				fmt.Printf("%s\n  %s\n", p.Title, p.Text)
			}
		}
	},
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		saved, err := s.PromptRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list prompts: %w", err)
		}
		if len(saved) == 0 {
			fmt.Println("No saved prompts.")
			return nil
		}
		for _, p := range saved {
			fmt.Printf("%s  %s  %s\n  %s\n", p.ID, p.CreatedAt.Local().Format("2006-01-02"), p.Name, p.Text)
		}
		return nil
	},
}

var promptsSaveCmd = &cobra.Command{
	Use:   "save <text>",
	Short: "Save a follow-up prompt for reuse",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.PromptRepo().Save(cmd.Context(), name, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("save prompt: %w", err)
		}
		fmt.Printf("Saved %q (%s).\n", p.Name, p.ID)
		return nil
	},
}

var promptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.PromptRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete prompt: %w", err)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	promptsSaveCmd.Flags().String("name", "", "Display name (defaults to the start of the text)")

	promptsCmd.AddCommand(promptsSuggestedCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsSaveCmd)
	promptsCmd.AddCommand(promptsDeleteCmd)
}

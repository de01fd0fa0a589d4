package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects and categories",
	Long: `Search labels, category names, and resolved paths. Matches are
case-insensitive substrings, returned in document order.

Example:
  projtree-cli search client`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := commands.NewSearchCommand(GetIndex(), args[0])
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(result.Matches) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, m := range result.Matches {
			fmt.Printf("%-10s %s  %s  %s\n", m.Kind, m.Key, m.Label, m.AbsPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var (
	addCategory string
	addIcon     string
)

var addCmd = &cobra.Command{
	Use:   "add <label> <path>",
	Short: "Add a project bookmark",
	Long: `Add a project bookmark to a category. Missing intermediate
categories are created. Absolute paths under the home directory are
stored in portable ~/ form.

Examples:
  projtree-cli add "My App" ~/code/my-app
  projtree-cli add "Client Site" ~/work/site --category Work.Clients --icon 🌐`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := commands.NewAddProjectCommand(GetRepo(),
			domain.ParseCategoryPath(addCategory), args[0], args[1], addIcon)
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "dotted category path (default: root)")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "icon glyph")
	rootCmd.AddCommand(addCmd)
}

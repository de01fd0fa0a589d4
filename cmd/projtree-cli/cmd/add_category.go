package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var addCategoryCmd = &cobra.Command{
	Use:     "add-category <category>",
	Aliases: []string{"mkdir"},
	Short:   "Create an empty category",
	Long: `Create an empty category at the given dotted path, materializing
missing intermediate categories.

Example:
  projtree-cli add-category Work.Clients`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := commands.NewAddCategoryCommand(GetRepo(), domain.ParseCategoryPath(args[0]))
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCategoryCmd)
}

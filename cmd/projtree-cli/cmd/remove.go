package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var removeMerge bool

var removeCmd = &cobra.Command{
	Use:   "remove <project-key | category>",
	Short: "Remove a project or category",
	Long: `Remove a project bookmark by its structural key, or a category by
its dotted path. Removing a category discards its contents unless --merge
folds them into the root first.

Examples:
  projtree-cli remove "__root__.projects[0]"
  projtree-cli remove Work.Old --merge`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, index, err := domain.ParseProjectKey(args[0]); err == nil {
			c := commands.NewRemoveProjectCommand(GetRepo(), path, index)
			result, err := c.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		}
		c := commands.NewRemoveCategoryCommand(GetRepo(), domain.ParseCategoryPath(args[0]), removeMerge)
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVar(&removeMerge, "merge", false, "merge the category's contents into the root instead of discarding them")
	rootCmd.AddCommand(removeCmd)
}

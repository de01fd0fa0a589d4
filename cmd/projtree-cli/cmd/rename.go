package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var renameParent string

var renameCmd = &cobra.Command{
	Use:   "rename <category> <new-name>",
	Short: "Rename or move a category",
	Long: `Rename a category, or move it under a different parent with
--parent. The subtree keeps its contents. Renames fail on a name collision
at the destination and on moves into the category's own subtree.

Examples:
  projtree-cli rename Work.Clients Customers
  projtree-cli rename Work.Clients Clients --parent Archive`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPath := domain.ParseCategoryPath(args[0])
		newParent := oldPath.Parent()
		if cmd.Flags().Changed("parent") {
			newParent = domain.ParseCategoryPath(renameParent)
		}
		c := commands.NewRenameCategoryCommand(GetRepo(), oldPath, newParent, args[1])
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	renameCmd.Flags().StringVar(&renameParent, "parent", "", "new parent category (empty string = root)")
	rootCmd.AddCommand(renameCmd)
}

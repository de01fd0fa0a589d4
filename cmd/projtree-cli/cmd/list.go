package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the children of a category",
	Long: `List the children of a category in display order. At the root,
categories come first and root-level projects after; inside a category,
projects come first.

Examples:
  projtree-cli list
  projtree-cli list Work.Clients`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path domain.CategoryPath
		if len(args) == 1 {
			path = domain.ParseCategoryPath(args[0])
		}
		var ref *domain.TreeNode
		if len(path) > 0 {
			ref = &domain.TreeNode{Kind: domain.KindCategory, Path: path}
		}
		children := GetRepo().ListChildren(ref)
		if len(path) > 0 && children == nil {
			return fmt.Errorf("category not found: %s", path.String())
		}
		for _, child := range children {
			if child.Kind == domain.KindCategory {
				fmt.Printf("%-10s %s\n", "category", child.Path.String())
				continue
			}
			fmt.Printf("%-10s %s  %s  %s\n", "project", child.Key(), child.Name, child.AbsPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"projtree/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the whole config tree",
	Long: `Display every category and project bookmark with resolved paths.

Example:
  projtree-cli tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := GetRepo().BuildTree()
		if err != nil {
			return err
		}
		printTree(root, 0)
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	if node.Parent != nil {
		indent := strings.Repeat("  ", depth-1)
		if node.Kind == domain.KindProject {
			fmt.Printf("%s%s  %s\n", indent, node.Name, node.AbsPath)
		} else {
			fmt.Printf("%s%s/\n", indent, node.Name)
		}
	}
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

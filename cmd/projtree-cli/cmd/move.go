package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var moveCmd = &cobra.Command{
	Use:   "move <project-key> <destination>",
	Short: "Move a project to a different category",
	Long: `Move a project bookmark to another category. The project keeps its
label, path, and icon, and is appended to the destination's list. Pass an
empty destination ("") to move to the root.

Example:
  projtree-cli move "Work.projects[0]" Work.Archive`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, index, err := domain.ParseProjectKey(args[0])
		if err != nil {
			return err
		}
		node, err := GetRepo().Root().NodeByPath(source)
		if err != nil {
			return err
		}
		if index >= len(node.Projects) {
			return fmt.Errorf("no project at %s", args[0])
		}
		p := node.Projects[index]

		c := commands.NewEditProjectCommand(GetRepo(), source, index,
			domain.ParseCategoryPath(args[1]), p.Label, p.Path, p.Icon)
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

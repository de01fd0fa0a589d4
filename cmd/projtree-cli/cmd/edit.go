package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
)

var (
	editLabel string
	editPath  string
	editIcon  string
)

var editCmd = &cobra.Command{
	Use:   "edit <project-key>",
	Short: "Edit a project's label, path, or icon",
	Long: `Edit a project bookmark in place. Only the given flags change;
the project keeps its position in the category.

Example:
  projtree-cli edit "Work.projects[1]" --label "New name"`,
	Args: cobra.ExactArgs(1),
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

		label, path, icon := p.Label, p.Path, p.Icon
		if cmd.Flags().Changed("label") {
			label = editLabel
		}
		if cmd.Flags().Changed("path") {
			path = editPath
		}
		if cmd.Flags().Changed("icon") {
			icon = editIcon
		}

		c := commands.NewEditProjectCommand(GetRepo(), source, index, source, label, path, icon)
		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editLabel, "label", "", "new label")
	editCmd.Flags().StringVar(&editPath, "path", "", "new filesystem path")
	editCmd.Flags().StringVar(&editIcon, "icon", "", "new icon glyph (empty clears it)")
	rootCmd.AddCommand(editCmd)
}

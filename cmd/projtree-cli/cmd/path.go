package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"projtree/internal/adapters/editor"
	"projtree/internal/domain"
)

var pathOpen bool

var pathCmd = &cobra.Command{
	Use:   "path <project-key>",
	Short: "Print a project's resolved absolute path",
	Long: `Print the absolute filesystem path of a project bookmark. Relative
paths resolve against the directory containing the config file, so the
output is stable regardless of the current working directory.

With --open the path is opened in $EDITOR instead of printed.

Example:
  cd "$(projtree-cli path 'Work.projects[0]')"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, index, err := domain.ParseProjectKey(args[0])
		if err != nil {
			return err
		}
		node, err := GetRepo().Root().NodeByPath(path)
		if err != nil {
			return err
		}
		if index >= len(node.Projects) {
			return fmt.Errorf("no project at %s", args[0])
		}
		abs := GetRepo().ResolvePath(node.Projects[index])
		if pathOpen {
			return editor.NewOpener().OpenFile(abs)
		}
		fmt.Println(abs)
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVar(&pathOpen, "open", false, "open the path in $EDITOR instead of printing it")
	rootCmd.AddCommand(pathCmd)
}

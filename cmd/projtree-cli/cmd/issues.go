package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List validation issues in the config file",
	Long: `List validation issues recorded during the last load, keyed by
structural path. A clean config prints nothing and exits zero.

Example:
  projtree-cli issues`,
	RunE: func(cmd *cobra.Command, args []string) error {
		issues := GetRepo().Issues()
		if !issues.HasAny() {
			return nil
		}
		keys := make([]string, 0, len(issues))
		for key := range issues {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, problem := range issues[key] {
				fmt.Printf("%s: %s\n", key, problem)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}

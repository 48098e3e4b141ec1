package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"webgate/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool catalog",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
		for _, def := range tools.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Category, def.Description)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/irvinng98/New2Canada/internal/routing"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the n2c version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("n2c version %s\n", version)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List assistance categories and the model each routes to",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := routing.Default()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tMODEL\tCALL SHAPE")
		for _, c := range reg.Categories() {
			raw := reg.Resolve(c)
			fmt.Fprintf(w, "%s\t%s\t%s\n", c, routing.Sanitize(raw), routing.ShapeFor(raw))
		}
		fmt.Fprintf(w, "(unknown)\t%s\t%s\n", routing.Sanitize(reg.Fallback()), routing.ShapeFor(reg.Fallback()))
		return w.Flush()
	},
}

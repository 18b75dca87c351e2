package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"gameplan-service/internal/models"
	"gameplan-service/internal/venues"
)

type venueOptions struct {
	CatalogPath string
}

func addVenues(topLevel *cobra.Command) {
	vo := &venueOptions{}

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Browse the venue catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&vo.CatalogPath, "catalog", os.Getenv("VENUES_CATALOG_PATH"), "venue catalog YAML file; the built-in catalog when empty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every venue.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := venues.Load(vo.CatalogPath)
			if err != nil {
				return err
			}
			printVenues(color.Output, catalog.All())
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "List venues whose name contains query, ignoring case.",
		Example: `
gameplan venues search soccer
gameplan venues search "field 3"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := venues.Load(vo.CatalogPath)
			if err != nil {
				return err
			}
			found := catalog.Search(args[0])
			if len(found) == 0 {
				_, _ = fmt.Fprintf(color.Output, "no venues match %q\n", args[0])
				return nil
			}
			printVenues(color.Output, found)
			return nil
		},
	}

	cmd.AddCommand(list, search)
	topLevel.AddCommand(cmd)
}

func printVenues(w io.Writer, list []models.Venue) {
	bold := color.New(color.Bold)
	name := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Location"), bold.Sprint("Open"))
	for _, v := range list {
		tbl.AddRow(v.ID, name.Sprint(v.Name), v.Category, fmt.Sprintf("%.4f, %.4f", v.Latitude, v.Longitude), v.Availability)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

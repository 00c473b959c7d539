package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/database"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listCmd prints what users currently see
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active catalog in display order",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := cmd.Context()
	exercise, err := services.ListExerciseVideos(ctx, db)
	if err != nil {
		return err
	}
	videos, err := services.ListFoodVideos(ctx, db)
	if err != nil {
		return err
	}
	foods, err := services.ListSuggestedFoods(ctx, db)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	section(w, "Exercise videos", len(exercise))
	for _, v := range exercise {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", order(v.DisplayOrder), v.Title, v.YoutubeURL)
	}
	section(w, "Food videos", len(videos))
	for _, v := range videos {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", order(v.DisplayOrder), v.Title, v.YoutubeURL)
	}
	section(w, "Suggested foods", len(foods))
	for _, f := range foods {
		category := ""
		if f.Category != nil {
			category = *f.Category
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", order(f.DisplayOrder), f.Name, category)
	}
	return w.Flush()
}

func section(w io.Writer, title string, n int) {
	fmt.Fprintf(w, "%s (%d)\n", title, n)
}

func order(o *int) string {
	if o == nil {
		return "-"
	}
	return fmt.Sprint(*o)
}

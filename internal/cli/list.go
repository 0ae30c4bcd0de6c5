package cli

import (
	"fmt"

	"github.com/hansollee/matzip/internal/query"
)

type ListCmd struct {
	Search string `short:"s" help:"Filter by food or restaurant name (case-insensitive)."`
	Sort   string `help:"Sort order: latest or rating-high." enum:"latest,rating-high" default:"latest"`
	Limit  int    `short:"n" help:"Show at most N records." default:"0"`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	records, err := ctx.Journal.Search(query.Filter{
		SearchTerm: c.Search,
		SortBy:     query.SortMode(c.Sort),
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}

	for _, rec := range records {
		name := rec.FoodName
		if rec.RestaurantName != "" {
			name = fmt.Sprintf("%s @ %s", rec.FoodName, rec.RestaurantName)
		}
		fmt.Printf("  #%-4d %s  %s  %s\n", rec.ID, rec.Date, formatRating(rec.Rating), name)
	}

	return nil
}

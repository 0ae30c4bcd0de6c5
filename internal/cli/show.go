package cli

import (
	"context"
	"fmt"
)

type ShowCmd struct {
	ID string `arg:"" help:"Record id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := parseRecordID(c.ID)
	if err != nil {
		return err
	}

	rec, err := ctx.Journal.Load(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Record #%d\n", rec.ID)
	fmt.Printf("  Food:       %s\n", rec.FoodName)
	fmt.Printf("  Restaurant: %s\n", rec.RestaurantName)
	fmt.Printf("  Date:       %s %s\n", rec.Date, rec.Time)
	fmt.Printf("  Rating:     %s\n", formatRating(rec.Rating))
	fmt.Printf("  Category:   %s\n", rec.Category)
	fmt.Printf("  Price:      %s\n", formatPrice(rec.Price))
	fmt.Printf("  Location:   %s\n", formatLocation(rec.Location))
	if rec.Review != "" {
		fmt.Printf("  Review:     %s\n", rec.Review)
	}
	if rec.Photo != "" {
		fmt.Printf("  Photo:      stored (%d bytes encoded)\n", len(rec.Photo))
	}
	fmt.Printf("  Created:    %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Updated:    %s\n", rec.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

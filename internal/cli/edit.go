package cli

import (
	"fmt"

	"github.com/hansollee/matzip/internal/models"
)

type EditCmd struct {
	ID string `arg:"" help:"Record id."`

	Food       *string  `help:"New dish name."`
	Restaurant *string  `short:"r" help:"New restaurant name."`
	Date       *string  `short:"d" help:"New visit date (YYYY-MM-DD)."`
	Time       *string  `short:"t" help:"New visit time (HH:MM)."`
	Rating     *float64 `short:"s" help:"New rating 0-5."`
	Review     *string  `help:"New review text."`
	Category   *string  `short:"c" help:"New category."`
	Price      *int64   `short:"p" help:"New price."`
	Photo      string   `help:"Path to a new photo file." type:"path"`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := loadStore(ctx); err != nil {
		return err
	}

	id, err := parseRecordID(c.ID)
	if err != nil {
		return err
	}

	patch := models.RecordPatch{
		FoodName:       c.Food,
		RestaurantName: c.Restaurant,
		Date:           c.Date,
		Time:           c.Time,
		Rating:         c.Rating,
		Review:         c.Review,
		Category:       c.Category,
		Price:          c.Price,
	}

	if err := ctx.Journal.Update(id, patch, c.Photo); err != nil {
		return err
	}

	fmt.Printf("Updated record #%d\n", id)
	return nil
}

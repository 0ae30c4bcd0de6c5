package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/keyring"
	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/internal/places"
)

type AddCmd struct {
	Food       string  `arg:"" help:"Name of the dish."`
	Restaurant string  `short:"r" help:"Restaurant name."`
	Date       string  `short:"d" help:"Visit date (YYYY-MM-DD), defaults to today."`
	Time       string  `short:"t" help:"Visit time (HH:MM, defaults to now)."`
	Rating     float64 `short:"s" help:"Rating 0-5, one decimal allowed." default:"0"`
	Review     string  `help:"Free-text review."`
	Category   string  `short:"c" help:"Category, e.g. noodles, bbq."`
	Price      *int64  `short:"p" help:"Price in whole currency units."`
	Photo      string  `help:"Path to a photo file." type:"path"`

	Address   string  `help:"Manually entered address."`
	Latitude  float64 `help:"Latitude for a manual location."`
	Longitude float64 `help:"Longitude for a manual location."`
	Place     string  `help:"Resolve the location by place search instead of entering it manually."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := loadStore(ctx); err != nil {
		return err
	}

	if c.Date == "" {
		c.Date = time.Now().Format(constants.DateFormat)
	}

	rec := models.FoodRecord{
		Date:           c.Date,
		Time:           c.Time,
		RestaurantName: c.Restaurant,
		FoodName:       c.Food,
		Category:       c.Category,
		Rating:         c.Rating,
		Review:         c.Review,
		Price:          c.Price,
		Location: models.Location{
			Address:   c.Address,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		},
	}

	if c.Place != "" {
		loc, err := resolvePlace(c.Place)
		if err != nil {
			return err
		}
		rec.Location = loc
		if rec.RestaurantName == "" {
			rec.RestaurantName = loc.PlaceName
		}
	}

	id, err := ctx.Journal.Create(rec, c.Photo)
	if err != nil {
		return err
	}

	fmt.Printf("Added record #%d: %s", id, c.Food)
	if rec.RestaurantName != "" {
		fmt.Printf(" at %s", rec.RestaurantName)
	}
	fmt.Println()
	return nil
}

// resolvePlace turns a search term into the best-matching location using
// the configured place-search API key.
func resolvePlace(term string) (models.Location, error) {
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		return models.Location{}, fmt.Errorf("place search needs an API key, run 'matzip apikey set' first: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := places.NewClient(apiKey)
	results, err := client.SearchKeyword(reqCtx, term, 1)
	if err != nil {
		return models.Location{}, err
	}
	if len(results) == 0 {
		return models.Location{}, fmt.Errorf("no place found for %q", term)
	}

	return results[0], nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hansollee/matzip/internal/keyring"
	"github.com/hansollee/matzip/internal/places"
)

type PlaceCmd struct {
	Query string `arg:"" help:"Place name or keyword to search for."`
	Limit int    `short:"n" help:"Maximum number of results." default:"5"`
}

func (c *PlaceCmd) Run(ctx *Context) error {
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		return fmt.Errorf("place search needs an API key, run 'matzip apikey set' first: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	results, err := places.NewClient(apiKey).SearchKeyword(reqCtx, c.Query, c.Limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No places found")
		return nil
	}

	for i, loc := range results {
		fmt.Printf("%d. %s\n   %s  (%.5f, %.5f)\n", i+1, loc.PlaceName, loc.Address, loc.Latitude, loc.Longitude)
	}
	return nil
}

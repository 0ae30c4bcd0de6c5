package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hansollee/matzip/internal/keyring"
)

type ApiKeySetCmd struct {
	Key string `arg:"" optional:"" help:"Place-search API key; prompted for when omitted."`
}

func (c *ApiKeySetCmd) Run(ctx *Context) error {
	key := c.Key
	if key == "" {
		fmt.Print("API key: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(line)
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}

	fmt.Println("API key stored in the OS keyring")
	return nil
}

type ApiKeyShowCmd struct{}

func (c *ApiKeyShowCmd) Run(ctx *Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored")
			return nil
		}
		return err
	}

	// Only reveal enough to identify the key.
	masked := key
	if len(masked) > 8 {
		masked = masked[:4] + strings.Repeat("*", len(masked)-8) + masked[len(masked)-4:]
	}
	fmt.Printf("Stored API key: %s\n", masked)
	return nil
}

type ApiKeyDeleteCmd struct{}

func (c *ApiKeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored")
			return nil
		}
		return err
	}

	fmt.Println("API key removed from the OS keyring")
	return nil
}

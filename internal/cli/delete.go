package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Record id."`
	Force bool   `short:"f" help:"Skip confirmation."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := loadStore(ctx); err != nil {
		return err
	}

	id, err := parseRecordID(c.ID)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete record #%d? This cannot be undone. [y/N]: ", id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := ctx.Journal.Delete(id); err != nil {
		return err
	}

	fmt.Printf("Deleted record #%d\n", id)
	return nil
}

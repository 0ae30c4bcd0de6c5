package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hansollee/matzip/internal/feedback"
)

type FeedbackCmd struct {
	Type    string `arg:"" help:"Report type: bug, feature, or other." enum:"bug,feature,other"`
	Message string `arg:"" help:"What happened, or what you wish existed (1-2000 chars)."`
	Email   string `short:"e" help:"Optional reply-to email."`
	Webhook string `help:"Feedback webhook URL." env:"MATZIP_FEEDBACK_WEBHOOK"`
}

func (c *FeedbackCmd) Run(ctx *Context) error {
	report := feedback.Report{
		Type:      c.Type,
		Message:   c.Message,
		Email:     c.Email,
		UserAgent: fmt.Sprintf("matzip (%s/%s)", runtime.GOOS, runtime.GOARCH),
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := feedback.NewRelay(c.Webhook).Send(reqCtx, report); err != nil {
		return err
	}

	fmt.Println("Thanks, feedback sent.")
	return nil
}

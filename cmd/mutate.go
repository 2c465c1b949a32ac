package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/eknkc/pinsearch/internal/engine"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Delete a bookmark and drop the local cache",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd.Context(), flagDeleteURL, args, (*engine.Engine).Delete,
			"Bookmark Deleted.", "Unable to delete bookmark.")
	},
}

var markReadCmd = &cobra.Command{
	Use:   "markread <url>",
	Short: "Mark a bookmark as read and drop the local cache",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd.Context(), flagMarkReadURL, args, (*engine.Engine).MarkRead,
			"Bookmark Marked as Read.", "Unable to mark bookmark as read.")
	},
}

var (
	flagDeleteURL   string
	flagMarkReadURL string
)

func init() {
	deleteCmd.Flags().StringVar(&flagDeleteURL, "url", "", "URL of the bookmark")
	markReadCmd.Flags().StringVar(&flagMarkReadURL, "url", "", "URL of the bookmark")
	rootCmd.AddCommand(deleteCmd, markReadCmd)
}

type mutation func(e *engine.Engine, ctx context.Context, url string) error

// runMutation prints a single line for Alfred's notification and returns the
// underlying error so the exit status reflects it.
func runMutation(ctx context.Context, flagURL string, args []string, do mutation, okMsg, failMsg string) error {
	url := flagURL
	if url == "" && len(args) == 1 {
		url = args[0]
	}
	if url == "" {
		return errors.New("a bookmark URL is required (argument or --url)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Options{Config: cfg, Logger: newLogger(stderr, cfg), UserAgent: userAgent()})
	if err != nil {
		return err
	}

	err = do(eng, ctx, url)
	if ferr := eng.Finish(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintln(stdout, failMsg)
		return err
	}
	fmt.Fprintln(stdout, okMsg)
	return nil
}

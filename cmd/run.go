package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/app"
	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/submit"
)

// runApp opens the journal, builds the client, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	page, _ := cmd.Flags().GetString("page")

	l, err := labels.For(cfg.Locale)
	if err != nil {
		return err
	}

	opts := app.Options{
		Labels:   l,
		Logger:   logger,
		Endpoint: cfg.Endpoint,
		Page:     screen.Page(page),
	}

	var repo store.SubmissionRepo
	st, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Submission journal unavailable:", err)
		fmt.Fprintln(os.Stderr, "History will be disabled.")
		logger.Warn("journal unavailable", zap.Error(err))
	} else {
		defer st.Close()
		repo = st.SubmissionRepo()
		opts.Repo = repo
	}

	client, err := newClient(repo)
	if err != nil {
		return err
	}
	opts.Client = client

	return app.Run(opts)
}

// newClient builds the HTTP submission client, journaled when repo is set.
func newClient(repo store.SubmissionRepo) (submit.Client, error) {
	hc, err := submit.NewHTTPClient(cfg.Submit())
	if err != nil {
		return nil, fmt.Errorf("create submission client: %w", err)
	}
	if repo == nil {
		return hc, nil
	}
	return submit.WithJournal(hc, repo, logger), nil
}

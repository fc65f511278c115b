package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shapekit/internal/checkrun"
	"shapekit/internal/ui"
)

type checkOutcome struct {
	results []checkrun.FileResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, req *checkrun.Request) ([]checkrun.FileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing check request")
	}
	events := make(chan checkrun.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = checkrun.ChannelSink{Ch: events}
		res, err := checkrun.Run(ctx, &reqCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the user may quit before the run finishes
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

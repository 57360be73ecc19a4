package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sitegrab"
)

// Run executes the view command.
func (c *ViewCmd) Run(deps *Dependencies) error {
	recs, err := deps.Records.FindRecords(deps.Ctx, sitegrab.RecordFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitegrab.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'sitegrab' to collect some.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s  (%d headings, %d paragraphs, %d lists, %d code)\n",
			r.ID, r.CapturedAt.Format("2006-01-02 15:04:05"), r.URL, r.Title,
			len(r.Headings), len(r.Paragraphs), len(r.Lists), len(r.CodeSnippets))
		if !c.Full {
			continue
		}
		b, err := json.MarshalIndent(r, "    ", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "    %s\n", b)
	}

	return nil
}

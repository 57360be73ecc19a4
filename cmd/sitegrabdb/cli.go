package main

import (
	"context"
	"io"

	"github.com/fwojciec/sitegrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Records sitegrab.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `name:"db" env:"SITEGRAB_DB" default:"web_data.db" help:"SQLite database path"`

	View   ViewCmd   `cmd:"" help:"Print every stored record"`
	Delete DeleteCmd `cmd:"" help:"Delete every stored record"`
}

// ViewCmd is the "view" subcommand.
type ViewCmd struct {
	Full bool `help:"Show headings, paragraphs, lists and code"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Force bool `help:"Confirm deletion"`
}

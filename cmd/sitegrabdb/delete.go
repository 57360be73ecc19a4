package main

import (
	"fmt"

	"github.com/fwojciec/sitegrab"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion of every record\n")
		return sitegrab.Errorf(sitegrab.EINVALID, "use --force to confirm deletion")
	}

	n, err := deps.Records.DeleteAllRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitegrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d records\n", n)
	return nil
}

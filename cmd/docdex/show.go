package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	store, err := loadStore(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	rec, ok := store.Get(c.ID)
	if !ok {
		err := docdex.Errorf(docdex.ENOTFOUND, "document %q not found", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}

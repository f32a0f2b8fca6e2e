package cmd

import (
	"fmt"

	"github.com/umputun/staffdb/app/store"
)

// CheckCommand tests connection to the database
type CheckCommand struct {
	CommonOpts
}

// Execute opens the database and runs a trivial statement
func (c *CheckCommand) Execute(_ []string) error {
	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}
	version, err := store.Check(c.execCtx(), db)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "connection to %s established, user_version %d\n", c.Provider.Path(), version)
	return nil
}

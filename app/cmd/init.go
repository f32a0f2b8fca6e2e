package cmd

import (
	"fmt"

	"github.com/umputun/staffdb/app/store"
)

// InitCommand creates the employee table
type InitCommand struct {
	CommonOpts
}

// Execute creates the table if it does not exist
func (c *InitCommand) Execute(_ []string) error {
	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}
	if err := store.EnsureSchema(c.execCtx(), db); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "table %s is ready\n", store.TableName)
	return nil
}

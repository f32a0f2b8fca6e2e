package cmd

import (
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/staffdb/app/store"
)

// AddCommand inserts a single employee
type AddCommand struct {
	Name   string `long:"name" description:"employee name" required:"true"`
	Salary string `long:"salary" description:"employee salary" required:"true"`
	Role   string `long:"role" description:"employee role" required:"true"`

	CommonOpts
}

// Execute validates input before opening the database, then inserts the record
func (c *AddCommand) Execute(_ []string) error {
	emp, err := store.ParseEmployee(c.Name, c.Salary, c.Role)
	if err != nil {
		return err
	}

	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}

	id, err := store.InsertEmployee(c.execCtx(), db, emp)
	if err != nil {
		return err
	}
	log.Printf("[DEBUG] employee %+v stored", emp)
	fmt.Fprintf(c.Out, "employee added with id %d\n", id)
	return nil
}

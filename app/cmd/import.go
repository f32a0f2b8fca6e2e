package cmd

import (
	"fmt"

	"github.com/umputun/staffdb/app/importer"
	"github.com/umputun/staffdb/app/store"
)

// ImportCommand loads employees from a yaml or json file
type ImportCommand struct {
	File        string `short:"f" long:"file" description:"yaml or json file with employees" required:"true"`
	Concurrency int    `long:"concurrency" default:"4" description:"max parallel inserts"`
	Init        bool   `long:"init" description:"create the table before import"`

	CommonOpts
}

// Execute loads, validates and inserts all employees of the file
func (c *ImportCommand) Execute(_ []string) error {
	f, err := importer.Load(c.File)
	if err != nil {
		return err
	}
	if err = f.Validate(); err != nil {
		return err
	}

	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}
	if c.Init {
		if err = store.EnsureSchema(c.execCtx(), db); err != nil {
			return err
		}
	}

	ids, err := importer.Importer{DB: db, Concurrency: c.Concurrency}.Import(c.execCtx(), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "imported %d employees from %s\n", len(ids), c.File)
	return nil
}

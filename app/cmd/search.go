package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/umputun/staffdb/app/store"
)

// SearchCommand lists employees matching optional filters
type SearchCommand struct {
	Text          string `long:"text" description:"substring of name or role"`
	Name          string `long:"name" description:"substring of name"`
	Role          string `long:"role" description:"substring of role"`
	MinSalary     string `long:"min-salary" description:"minimal salary, inclusive"`
	CaseSensitive bool   `long:"case-sensitive" description:"case-sensitive substring match"`
	JSON          bool   `long:"json" description:"print results as json"`

	CommonOpts
}

// Execute runs the search and prints results
func (c *SearchCommand) Execute(_ []string) error {
	filter := store.ParseFilter(c.Text, c.MinSalary)
	filter.Name, filter.Role, filter.CaseSensitive = c.Name, c.Role, c.CaseSensitive

	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}

	employees, err := store.SearchEmployees(c.execCtx(), db, filter)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(employees)
	}

	if len(employees) == 0 {
		fmt.Fprintln(c.Out, "no employees found")
		return nil
	}

	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tSALARY")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Role, strconv.FormatFloat(e.Salary, 'f', 2, 64))
	}
	return tw.Flush()
}

package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

const selectEmployees = "SELECT id, nome, salario, cargo FROM funcionarios"

// Filter defines optional search predicates, zero value selects everything.
// By default substrings match with sqlite LIKE, case-insensitive for ASCII letters only,
// so "ana" finds "Ana" but "é" does not match "É". Set CaseSensitive for exact matching.
type Filter struct {
	Text          string   // substring of name or role
	Name          string   // substring of name
	Role          string   // substring of role
	MinSalary     *float64 // inclusive lower bound of salary
	CaseSensitive bool     // match substrings with instr instead of LIKE
}

// ParseFilter makes Filter from raw form input. Blank or non-numeric minSalary is ignored.
func ParseFilter(text, minSalary string) Filter {
	res := Filter{Text: text}
	if s := strings.TrimSpace(minSalary); s != "" {
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			res.MinSalary = &val
		}
	}
	return res
}

// Query builds the select statement and its positional parameters.
// Predicates are added in a fixed order: text, name, role, min salary.
func (f Filter) Query() (query string, params []any) {
	var conds []string

	if strings.TrimSpace(f.Text) != "" {
		conds = append(conds, "("+f.match("nome")+" OR "+f.match("cargo")+")")
		params = append(params, f.pattern(f.Text), f.pattern(f.Text))
	}

	if strings.TrimSpace(f.Name) != "" {
		conds = append(conds, f.match("nome"))
		params = append(params, f.pattern(f.Name))
	}

	if strings.TrimSpace(f.Role) != "" {
		conds = append(conds, f.match("cargo"))
		params = append(params, f.pattern(f.Role))
	}

	if f.MinSalary != nil && !math.IsNaN(*f.MinSalary) && !math.IsInf(*f.MinSalary, 0) {
		conds = append(conds, "salario >= ?")
		params = append(params, *f.MinSalary)
	}

	if len(conds) == 0 {
		return selectEmployees, nil
	}
	return selectEmployees + " WHERE " + strings.Join(conds, " AND "), params
}

// match returns substring predicate for the column with a single placeholder
func (f Filter) match(column string) string {
	if f.CaseSensitive {
		return "instr(" + column + ", ?) > 0"
	}
	return column + " LIKE ?"
}

func (f Filter) pattern(s string) string {
	if f.CaseSensitive {
		return s
	}
	return "%" + s + "%"
}

// SearchEmployees returns employees matching the filter in the engine's row order.
// No matches is an empty slice, not an error.
func SearchEmployees(ctx context.Context, db sqlx.QueryerContext, f Filter) ([]Employee, error) {
	query, params := f.Query()
	res := []Employee{}
	if err := sqlx.SelectContext(ctx, db, &res, query, params...); err != nil {
		return nil, fmt.Errorf("%w: failed to search employees: %w", ErrQuery, err)
	}
	return res, nil
}

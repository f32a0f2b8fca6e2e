package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Employee is a single row of the funcionarios table
type Employee struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"nome" json:"name"`
	Salary float64 `db:"salario" json:"salary"`
	Role   string  `db:"cargo" json:"role"`
}

// ParseEmployee makes Employee from raw form input and validates it
func ParseEmployee(name, salary, role string) (Employee, error) {
	s := strings.TrimSpace(salary)
	if s == "" {
		return Employee{}, fmt.Errorf("%w: salary is required", ErrValidation)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Employee{}, fmt.Errorf("%w: salary %q is not a number", ErrValidation, salary)
	}

	res := Employee{Name: name, Salary: val, Role: role}
	if err := res.Validate(); err != nil {
		return Employee{}, err
	}
	return res, nil
}

// Validate checks name and role are not blank and salary is a finite number
func (e Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(e.Role) == "" {
		return fmt.Errorf("%w: role is required", ErrValidation)
	}
	if math.IsNaN(e.Salary) || math.IsInf(e.Salary, 0) {
		return fmt.Errorf("%w: salary must be a finite number", ErrValidation)
	}
	return nil
}

// InsertEmployee validates e and stores it, returning the id assigned by the engine.
// Nothing is written if validation fails.
func InsertEmployee(ctx context.Context, db sqlx.ExecerContext, e Employee) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `INSERT INTO funcionarios (nome, salario, cargo) VALUES (?, ?, ?)`,
		e.Name, e.Salary, e.Role)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert employee %q: %w", ErrWrite, e.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get id of employee %q: %w", ErrWrite, e.Name, err)
	}
	return id, nil
}

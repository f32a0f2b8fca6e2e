// Package importer loads employee records from a YAML or JSON file and writes them to the store.
// All entries are validated before the first insert, so a bad file leaves the database untouched.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"
	"github.com/invopop/jsonschema"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/umputun/staffdb/app/store"
)

const defaultConcurrency = 4

// File is the top level structure of the import file
type File struct {
	Employees []Entry `yaml:"employees" json:"employees" jsonschema:"required,minItems=1,description=employees to insert"`
}

// Entry is a single employee in the import file
type Entry struct {
	Name   string   `yaml:"name" json:"name" jsonschema:"required,minLength=1,description=employee name"`
	Salary *float64 `yaml:"salary" json:"salary" jsonschema:"required,description=monthly salary"`
	Role   string   `yaml:"role" json:"role" jsonschema:"required,minLength=1,description=job role"`
}

// Load reads and decodes the import file. JSON input works as well, being a subset of YAML.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var res File
	if err := yaml.Unmarshal(data, &res); err != nil {
		return File{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return res, nil
}

// Validate checks the file has at least one entry and every entry is a valid employee
func (f File) Validate() error {
	if len(f.Employees) == 0 {
		return fmt.Errorf("%w: at least one employee is required", store.ErrValidation)
	}
	for i, e := range f.Employees {
		if e.Salary == nil {
			return fmt.Errorf("%w: employee %d: salary is required", store.ErrValidation, i+1)
		}
		if err := e.employee().Validate(); err != nil {
			return fmt.Errorf("employee %d: %w", i+1, err)
		}
	}
	return nil
}

func (e Entry) employee() store.Employee {
	res := store.Employee{Name: e.Name, Role: e.Role}
	if e.Salary != nil {
		res.Salary = *e.Salary
	}
	return res
}

// Importer writes validated files to the database
type Importer struct {
	DB          sqlx.ExecerContext
	Concurrency int // max parallel inserts, defaults to 4
}

// Import validates the whole file, then inserts every entry as its own statement.
// Returned ids follow file order, entries that failed to insert get 0.
func (im Importer) Import(ctx context.Context, f File) ([]int64, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	concur := im.Concurrency
	if concur <= 0 {
		concur = defaultConcurrency
	}

	ids := make([]int64, len(f.Employees))
	errs := make([]error, len(f.Employees))
	gr := syncs.NewSizedGroup(concur)
	for i, e := range f.Employees {
		gr.Go(func(context.Context) {
			id, err := store.InsertEmployee(ctx, im.DB, e.employee())
			if err != nil {
				errs[i] = fmt.Errorf("employee %d: %w", i+1, err)
				return
			}
			ids[i] = id
		})
	}
	gr.Wait()

	if err := errors.Join(errs...); err != nil {
		return ids, fmt.Errorf("failed to import employees: %w", err)
	}
	log.Printf("[INFO] imported %d employees", len(ids))
	return ids, nil
}

// GenerateSchema returns JSON schema of the import file
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&File{})
}

package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/staffdb/app/store"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		fname := filepath.Join(tmpDir, "employees.yml")
		content := `# employees
employees:
  - name: Ana Silva
    salary: 4500
    role: Analista
  - name: "Bruno Lima"
    salary: 6000.50
    role: Gerente
`
		require.NoError(t, os.WriteFile(fname, []byte(content), 0o600))

		f, err := Load(fname)
		require.NoError(t, err)
		require.Len(t, f.Employees, 2)
		assert.Equal(t, "Ana Silva", f.Employees[0].Name)
		require.NotNil(t, f.Employees[1].Salary)
		assert.InDelta(t, 6000.5, *f.Employees[1].Salary, 0.001)
		assert.Equal(t, "Gerente", f.Employees[1].Role)
	})

	t.Run("json", func(t *testing.T) {
		fname := filepath.Join(tmpDir, "employees.json")
		content := `{"employees": [{"name": "Carla", "salary": 5000, "role": "Designer"}]}`
		require.NoError(t, os.WriteFile(fname, []byte(content), 0o600))

		f, err := Load(fname)
		require.NoError(t, err)
		require.Len(t, f.Employees, 1)
		assert.Equal(t, "Carla", f.Employees[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(tmpDir, "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		fname := filepath.Join(tmpDir, "broken.yml")
		require.NoError(t, os.WriteFile(fname, []byte("employees: [name: {"), 0o600))
		_, err := Load(fname)
		assert.Error(t, err)
	})
}

func TestFile_Validate(t *testing.T) {
	salary := 100.0
	tests := []struct {
		name    string
		file    File
		wantErr string
	}{
		{"valid", File{Employees: []Entry{{Name: "Ana", Salary: &salary, Role: "Analista"}}}, ""},
		{"empty", File{}, "at least one employee"},
		{"no salary", File{Employees: []Entry{{Name: "Ana", Role: "Analista"}}}, "employee 1: salary is required"},
		{"blank name in second entry", File{Employees: []Entry{
			{Name: "Ana", Salary: &salary, Role: "Analista"},
			{Name: " ", Salary: &salary, Role: "Gerente"},
		}}, "employee 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImporter_Import(t *testing.T) {
	db := newTestDB(t)
	s1, s2, s3 := 4500.0, 6000.0, 5000.0

	f := File{Employees: []Entry{
		{Name: "Ana Silva", Salary: &s1, Role: "Analista"},
		{Name: "Bruno Lima", Salary: &s2, Role: "Gerente"},
		{Name: "Carla Souza", Salary: &s3, Role: "Designer"},
	}}

	ids, err := Importer{DB: db, Concurrency: 2}.Import(t.Context(), f)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	for i, id := range ids {
		var name string
		require.NoError(t, db.Get(&name, "SELECT nome FROM funcionarios WHERE id = ?", id))
		assert.Equal(t, f.Employees[i].Name, name)
	}

	res, err := store.SearchEmployees(t.Context(), db, store.Filter{})
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestImporter_ImportInvalidWritesNothing(t *testing.T) {
	db := newTestDB(t)
	salary := 4500.0

	f := File{Employees: []Entry{
		{Name: "Ana Silva", Salary: &salary, Role: "Analista"},
		{Name: "Bruno Lima", Salary: &salary, Role: ""},
	}}

	ids, err := Importer{DB: db}.Import(t.Context(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrValidation)
	assert.Nil(t, ids)

	res, err := store.SearchEmployees(t.Context(), db, store.Filter{})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestImporter_ImportWriteError(t *testing.T) {
	p := store.NewProvider(filepath.Join(t.TempDir(), "test.db"))
	defer p.Close()
	db, err := p.Connection(t.Context())
	require.NoError(t, err)
	salary := 1.0

	// no schema, every insert fails
	_, err = Importer{DB: db}.Import(t.Context(), File{Employees: []Entry{{Name: "Ana", Salary: &salary, Role: "Analista"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee 1")
	assert.ErrorIs(t, err, store.ErrWrite)

	// every failed entry is reported
	entries := []Entry{{Name: "Ana", Salary: &salary, Role: "Analista"}, {Name: "Bruno", Salary: &salary, Role: "Gerente"}}
	_, err = Importer{DB: db, Concurrency: 2}.Import(t.Context(), File{Employees: entries})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrWrite)
	assert.Contains(t, err.Error(), "employee 1")
	assert.Contains(t, err.Error(), "employee 2")
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"employees"`)
	assert.Contains(t, string(data), `"salary"`)
	assert.Contains(t, string(data), `"required"`)
}

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	p := store.NewProvider(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { _ = p.Close() })
	db, err := p.Connection(t.Context())
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(t.Context(), db))
	return db
}

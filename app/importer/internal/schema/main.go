// Command schema writes JSON schema of the employee import file, for editors and CI checks of import files.
// Usage: go run ./app/importer/internal/schema [output.json]
package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/staffdb/app/importer"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := writeSchema(outputPath); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	fmt.Printf("import file schema written to %s\n", outputPath)
}

// writeSchema renders the import file schema with a title and stores it at path
func writeSchema(path string) error {
	schema := importer.GenerateSchema()
	schema.Title = "staffdb employee import file"
	schema.Description = "employees inserted by 'staffdb import', YAML or JSON"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write schema to %s: %w", path, err)
	}
	return nil
}

// Command schema generates JSON schema of the booruscope config, embedded by pkg/config
package main

import (
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/goccy/go-json"

	"github.com/umputun/booruscope/pkg/config"
)

func main() {
	schema, err := config.GenerateSchema()
	if err != nil {
		lgr.Fatalf("failed to generate schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		lgr.Fatalf("failed to marshal schema: %v", err)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		lgr.Fatalf("failed to write schema file: %v", err)
	}

	fmt.Printf("schema generated at %s\n", outputPath)
}

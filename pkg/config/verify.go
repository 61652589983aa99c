package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, []byte(embeddedSchema))
}

// schemaDoc is the part of generated schema used for verification
type schemaDoc struct {
	Defs map[string]schemaDef `json:"$defs"`
}

type schemaDef struct {
	Properties map[string]struct {
		Ref string `json:"$ref"`
	} `json:"properties"`
}

func verify(cfg *Config, schemaData []byte) error {
	var schema schemaDoc
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// sections and fields of the config must match the schema both ways
	root, ok := schema.Defs["Config"]
	if !ok || len(root.Properties) == 0 {
		return fmt.Errorf("schema has no Config definition")
	}
	for _, name := range sortedKeys(root.Properties) {
		section, ok := configMap[name].(map[string]any)
		if !ok {
			return fmt.Errorf("section %q missing in config", name)
		}
		def, ok := schema.Defs[strings.TrimPrefix(root.Properties[name].Ref, "#/$defs/")]
		if !ok {
			return fmt.Errorf("section %q has no schema definition", name)
		}
		for _, field := range sortedKeys(def.Properties) {
			if _, ok := section[field]; !ok {
				return fmt.Errorf("field %s.%s missing in config", name, field)
			}
		}
		var extra []string
		for _, field := range sortedKeys(section) {
			if _, ok := def.Properties[field]; !ok {
				extra = append(extra, field)
			}
		}
		if len(extra) > 0 {
			return fmt.Errorf("fields %v of section %q are not in schema, regenerate schema.json", extra, name)
		}
	}

	// basic validation - check required fields
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Booru.BaseURL == "" {
		return fmt.Errorf("booru.base_url is required")
	}
	if cfg.Profile.Path == "" {
		return fmt.Errorf("profile.path is required")
	}
	if cfg.Booru.APIKey != "" && cfg.Booru.Login == "" {
		return fmt.Errorf("booru.login is required when booru.api_key is set")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

package keys

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// localeSchema describes the accepted localization document shape: a
// string-keyed tree whose leaves are strings, numbers, booleans, or arrays.
const localeSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$id": "localens:locale",
	"type": "object",
	"additionalProperties": {"$ref": "#/$defs/node"},
	"$defs": {
		"node": {
			"anyOf": [
				{"type": "string"},
				{"type": "number"},
				{"type": "boolean"},
				{"type": "array"},
				{
					"type": "object",
					"additionalProperties": {"$ref": "#/$defs/node"}
				}
			]
		}
	}
}`

var compileLocaleSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(localeSchema))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("localens:locale", doc); err != nil {
		return nil, err
	}
	return c.Compile("localens:locale")
})

// ValidateLocale checks a decoded localization tree against the schema.
func ValidateLocale(tree map[string]any) error {
	schema, err := compileLocaleSchema()
	if err != nil {
		return fmt.Errorf("compiling locale schema: %w", err)
	}
	return schema.Validate(any(tree))
}

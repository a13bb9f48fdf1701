package reason

import (
	"embed"
	"encoding/json"
	"fmt"

	"charm.land/fantasy/schema"
)

//go:embed schemas/*.jsonschema
var schemaFS embed.FS

var (
	parseSchema    = mustSchema("schemas/parse.jsonschema")
	simulateSchema = mustSchema("schemas/simulate.jsonschema")
)

func mustSchema(name string) schema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read embedded schema %s: %v", name, err))
	}
	var s schema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		panic(fmt.Sprintf("parse embedded schema %s: %v", name, err))
	}
	return s
}

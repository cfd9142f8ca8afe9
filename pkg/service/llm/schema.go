package llm

import (
	_ "embed"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	//go:embed schema/hazard.json
	hazardSchemaJSON string

	//go:embed schema/metadata.json
	metadataSchemaJSON string

	hazardSchema   = mustCompileSchema("hazard.json", hazardSchemaJSON)
	metadataSchema = mustCompileSchema("metadata.json", metadataSchemaJSON)
)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(goerr.Wrap(err, "failed to add schema", goerr.V("name", name)))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(goerr.Wrap(err, "failed to compile schema", goerr.V("name", name)))
	}
	return schema
}

package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed lesson.schema.json
var lessonSchemaJSON []byte

const lessonSchemaURL = "schema://finko/lesson.json"

var (
	lessonSchemaOnce sync.Once
	lessonSchema     *jsonschema.Schema
	lessonSchemaErr  error
)

func compiledLessonSchema() (*jsonschema.Schema, error) {
	lessonSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(lessonSchemaJSON))
		if err != nil {
			lessonSchemaErr = fmt.Errorf("parse lesson schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(lessonSchemaURL, doc); err != nil {
			lessonSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		lessonSchema, lessonSchemaErr = c.Compile(lessonSchemaURL)
	})
	return lessonSchema, lessonSchemaErr
}

// validateDocument checks a decoded YAML document against the lesson schema.
// The document is round-tripped through JSON so numbers and maps have the
// shapes the validator expects.
func validateDocument(doc any) error {
	schema, err := compiledLessonSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return schema.Validate(parsed)
}

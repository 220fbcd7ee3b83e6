package resumes

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed content_schema.json
var contentSchemaJSON []byte

var (
	contentSchemaOnce sync.Once
	contentSchema     *gojsonschema.Schema
	contentSchemaErr  error
)

// ValidateContent checks structured resume content against the embedded schema.
// Nil content is allowed; callers treat it as an empty document.
func ValidateContent(content map[string]any) error {
	if content == nil {
		return nil
	}

	contentSchemaOnce.Do(func() {
		contentSchema, contentSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(contentSchemaJSON))
	})
	if contentSchemaErr != nil {
		return fmt.Errorf("load content schema: %w", contentSchemaErr)
	}

	result, err := contentSchema.Validate(gojsonschema.NewGoLoader(content))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if result.Valid() {
		return nil
	}

	msg := ""
	for _, e := range result.Errors() {
		if msg != "" {
			msg += "; "
		}
		msg += e.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidContent, msg)
}

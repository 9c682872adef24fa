package planner

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// schemaError carries every schema violation found in a plan document.
type schemaError struct {
	violations []gojsonschema.ResultError
}

func (e *schemaError) Error() string {
	descriptions := make([]string, 0, len(e.violations))
	for _, violation := range e.violations {
		descriptions = append(descriptions, violation.String())
	}

	return "plan does not match schema: " + strings.Join(descriptions, "; ")
}

package planner

// planSchema is the contract the planning responder's output must meet
// before it is trusted as an execution plan. Validation is fail-closed:
// output that does not satisfy the schema is discarded in favor of the
// fallback plan.
const planSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["question", "analysis", "steps", "complexity"],
  "properties": {
    "question": {
      "type": "string",
      "minLength": 1
    },
    "analysis": {
      "type": "string"
    },
    "complexity": {
      "type": "string",
      "enum": ["simple", "medium", "complex"]
    },
    "steps": {
      "type": "array",
      "minItems": 1,
      "maxItems": 15,
      "items": {
        "type": "object",
        "required": ["step_id", "step_type", "description", "action"],
        "properties": {
          "step_id": {
            "type": "integer",
            "minimum": 1
          },
          "step_type": {
            "type": "string",
            "enum": ["reasoning", "web_search", "news_search", "kb_query", "aggregate", "compare"]
          },
          "description": {
            "type": "string",
            "minLength": 1
          },
          "action": {
            "type": "string",
            "minLength": 1
          },
          "dependencies": {
            "type": "array",
            "items": {
              "type": "integer",
              "minimum": 1
            }
          }
        }
      }
    }
  }
}`

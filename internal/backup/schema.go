package backup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema constrains the field types of snapshot records. Presence of
// the required fields is checked by validateRaw first so its messages win.
// Unknown fields are allowed.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "id": {"type": "integer"},
    "timestamp": {"type": ["string", "null"]},
    "optionalString": {"type": ["string", "null"]},
    "flag": {"type": ["boolean", "null"]}
  },
  "properties": {
    "version": {"type": "string"},
    "exportDate": {"type": "string"},
    "employers": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "name": {"type": "string"},
          "notes": {"$ref": "#/definitions/optionalString"},
          "industry": {"$ref": "#/definitions/optionalString"},
          "favorited": {"$ref": "#/definitions/flag"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "jobs": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "employerId": {"$ref": "#/definitions/id"},
          "title": {"type": "string"},
          "notes": {"$ref": "#/definitions/optionalString"},
          "link": {"$ref": "#/definitions/optionalString"},
          "referenceNumber": {"$ref": "#/definitions/optionalString"},
          "salaryEstimate": {"$ref": "#/definitions/optionalString"},
          "interestLevel": {"type": ["integer", "null"]},
          "archived": {"$ref": "#/definitions/flag"},
          "favorited": {"$ref": "#/definitions/flag"},
          "status": {"$ref": "#/definitions/optionalString"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "jobId": {"$ref": "#/definitions/id"},
          "keyword": {"type": "string"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "activities": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "jobId": {"type": ["integer", "null"]},
          "type": {"$ref": "#/definitions/optionalString"},
          "category": {"$ref": "#/definitions/optionalString"},
          "notes": {"$ref": "#/definitions/optionalString"},
          "previousStatus": {"$ref": "#/definitions/optionalString"},
          "newStatus": {"$ref": "#/definitions/optionalString"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "goals": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "type": {"$ref": "#/definitions/optionalString"},
          "targetNumber": {"type": "integer"},
          "frequencyDays": {"type": "integer"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    },
    "userKeywords": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "id": {"$ref": "#/definitions/id"},
          "keyword": {"$ref": "#/definitions/optionalString"},
          "createdAt": {"$ref": "#/definitions/timestamp"},
          "updatedAt": {"$ref": "#/definitions/timestamp"}
        }
      }
    }
  },
  "required": ["version", "exportDate", "employers", "jobs", "keywords"]
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(snapshotSchema))
	})
	return compiledSchema, schemaErr
}

// schemaMessages maps the collection a schema violation sits in to the
// message reported for it.
var schemaMessages = map[string]string{
	string(CategoryEmployers): "invalid employer data",
	string(CategoryJobs):      "invalid job data",
	string(CategoryKeywords):  "invalid keyword data",
	string(CategoryGoals):     "invalid goals data structure",
}

// validateSchema checks field types of an already decoded document.
func validateSchema(v interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile snapshot schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return &ValidationError{Message: "invalid data format", Detail: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	msg := "invalid data structure"
	field := first.Field()
	if i := strings.Index(field, "."); i > 0 {
		if m, ok := schemaMessages[field[:i]]; ok {
			msg = m
		}
	}
	return &ValidationError{Message: msg, Detail: first.String()}
}

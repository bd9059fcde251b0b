package backup

import (
	"encoding/json"
	"strings"
)

// validateRaw runs the structural checks on a generically decoded document
// and reports the first violation class found.
func validateRaw(v interface{}) error {
	obj, ok := v.(map[string]interface{})
	if !ok || obj == nil {
		return invalid("invalid data format")
	}

	if !nonEmptyString(obj["version"]) || !nonEmptyString(obj["exportDate"]) {
		return invalid("missing required metadata")
	}

	for _, c := range collections {
		raw, present := obj[string(c.Category)]
		if !present || raw == nil {
			if c.Required {
				return invalid(c.Message)
			}
			continue
		}
		if _, ok := raw.([]interface{}); !ok {
			return invalid(c.Message)
		}
	}

	for _, item := range asArray(obj[string(CategoryEmployers)]) {
		rec, ok := item.(map[string]interface{})
		if !ok || !nonEmptyString(rec["name"]) {
			return invalid("invalid employer data")
		}
	}

	for _, item := range asArray(obj[string(CategoryJobs)]) {
		rec, ok := item.(map[string]interface{})
		if !ok || !nonEmptyString(rec["title"]) || !nonZeroNumber(rec["employerId"]) {
			return invalid("invalid job data")
		}
	}

	for _, item := range asArray(obj[string(CategoryKeywords)]) {
		rec, ok := item.(map[string]interface{})
		if !ok || !nonEmptyString(rec["keyword"]) || !nonZeroNumber(rec["jobId"]) {
			return invalid("invalid keyword data")
		}
	}

	return nil
}

// validateDocument applies the same record checks to a typed document.
// Nil collections are treated as empty.
func validateDocument(doc *Document) error {
	if doc == nil {
		return invalid("invalid data format")
	}
	if strings.TrimSpace(doc.Version) == "" || strings.TrimSpace(doc.ExportDate) == "" {
		return invalid("missing required metadata")
	}

	for _, e := range doc.Employers {
		if e == nil || strings.TrimSpace(e.Name) == "" {
			return invalid("invalid employer data")
		}
	}
	for _, j := range doc.Jobs {
		if j == nil || strings.TrimSpace(j.Title) == "" || j.EmployerID == 0 {
			return invalid("invalid job data")
		}
	}
	for _, k := range doc.Keywords {
		if k == nil || strings.TrimSpace(k.Keyword) == "" || k.JobID == 0 {
			return invalid("invalid keyword data")
		}
	}
	return nil
}

func nonEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func nonZeroNumber(v interface{}) bool {
	switch n := v.(type) {
	case float64:
		return n != 0
	case json.Number:
		f, err := n.Float64()
		return err == nil && f != 0
	}
	return false
}

func asArray(v interface{}) []interface{} {
	arr, _ := v.([]interface{})
	return arr
}

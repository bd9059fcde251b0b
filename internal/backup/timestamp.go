package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// timestampLayouts are the ISO-8601 forms accepted for record timestamps.
// Forms without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

var timestampFields = []string{"createdAt", "updatedAt"}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// decodeRaw decodes a whole document generically. Numbers stay json.Number
// so re-encoding keeps them exact.
func decodeRaw(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the document")
	}
	return raw, nil
}

// normalizeTimestamps rewrites the record timestamps of a generically
// decoded document to RFC 3339. Values that do not parse are removed so the
// record gets the import time. It returns how many were removed.
func normalizeTimestamps(v interface{}) int {
	obj, _ := v.(map[string]interface{})
	removed := 0
	for _, c := range collections {
		for _, item := range asArray(obj[string(c.Category)]) {
			rec, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			for _, field := range timestampFields {
				s, ok := rec[field].(string)
				if !ok {
					continue
				}
				if t, ok := parseTimestamp(s); ok {
					rec[field] = t.Format(time.RFC3339Nano)
					continue
				}
				delete(rec, field)
				removed++
			}
		}
	}
	return removed
}

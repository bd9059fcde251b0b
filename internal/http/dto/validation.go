package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) ToMap() map[string]string {
	return map[string]string{e.Field: e.Message}
}

func ToMap(errs []ValidationError) map[string]string {
	result := make(map[string]string)
	for _, e := range errs {
		result[e.Field] = e.Message
	}
	return result
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ParseBoolParam reads an optional boolean query parameter. Empty means false.
func ParseBoolParam(field, raw string) (bool, []ValidationError) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, []ValidationError{{Field: field, Message: "must be true or false"}}
	}
	return v, nil
}

// ParsePageParams reads page and page_size, defaulting to the first page of
// DefaultPageSize items.
func ParsePageParams(pageRaw, sizeRaw string) (page, size int, errs []ValidationError) {
	page, size = 1, DefaultPageSize
	if pageRaw != "" {
		n, err := strconv.Atoi(pageRaw)
		if err != nil || n < 1 {
			errs = append(errs, ValidationError{Field: "page", Message: "must be a positive integer"})
		} else {
			page = n
		}
	}
	if sizeRaw != "" {
		n, err := strconv.Atoi(sizeRaw)
		if err != nil || n < 1 || n > MaxPageSize {
			errs = append(errs, ValidationError{Field: "page_size", Message: fmt.Sprintf("must be between 1 and %d", MaxPageSize)})
		} else {
			size = n
		}
	}
	return page, size, errs
}

// ParseID reads a positive numeric path parameter.
func ParseID(field, raw string) (int64, []ValidationError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, []ValidationError{{Field: field, Message: "must be a positive integer"}}
	}
	return id, nil
}

func validateStatus(status *string) []ValidationError {
	if status == nil || *status == "" {
		return []ValidationError{{Field: "status", Message: "is required"}}
	}
	if _, err := domain.ParseJobStatus(*status); err != nil {
		return []ValidationError{{Field: "status", Message: "must be one of not applied, applied, interview, offer, rejected, withdrawn"}}
	}
	return nil
}

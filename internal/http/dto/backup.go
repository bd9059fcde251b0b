package dto

type ErrorResponse struct {
	Error   string            `json:"error"`
	Detail  string            `json:"detail,omitempty"`
	Invalid map[string]string `json:"invalid,omitempty"`
}

type WarningResponse struct {
	Warning string `json:"warning"`
}

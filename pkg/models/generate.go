package models

type GenerateSQLRequest struct {
	Question string  `json:"question"`
	Schema   *string `json:"schema,omitempty"`
}

type GenerateSQLResponse struct {
	SQL string `json:"sql"`
}

type GenerateSQLError struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

package audit

// QueryData describes a single question submitted for SQL generation.
type QueryData struct {
	RequestID string
	Question  string
	User      string
	Timestamp int64
}

type Audit interface {
	Write(*QueryData) error
}

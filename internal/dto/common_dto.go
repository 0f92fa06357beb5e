package dto

const (
	TypeSuccess = "SUCCESS"
	TypeError   = "ERROR"
)

// Response is the {type, message} envelope every endpoint returns.
type Response struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

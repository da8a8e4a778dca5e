package types

// MessageEnvelope is returned by endpoints that only report an outcome.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

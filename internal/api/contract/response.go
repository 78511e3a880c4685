package contract

// ErrorResponse is the body returned for failures that did not come from the gateway.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

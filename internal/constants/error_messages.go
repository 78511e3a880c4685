package constants

import "net/http"

const (
	ErrCodeGatewayCredentialsMissing = "GATEWAY_CREDENTIALS_MISSING"
	ErrCodeGatewayUnavailable        = "GATEWAY_UNAVAILABLE"
	ErrCodeGatewayTimeout            = "GATEWAY_TIMEOUT"
	ErrCodeInternalError             = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody        = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgGatewayCredentialsMissing = "payment gateway credentials are not configured"
	ErrMsgGatewayUnavailable        = "internal server error"
	ErrMsgGatewayTimeout            = "payment gateway did not respond in time"
	ErrMsgInternalError             = "internal server error"
	ErrMsgInvalidRequestBody        = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeGatewayCredentialsMissing: ErrMsgGatewayCredentialsMissing,
	ErrCodeGatewayUnavailable:        ErrMsgGatewayUnavailable,
	ErrCodeGatewayTimeout:            ErrMsgGatewayTimeout,
	ErrCodeInternalError:             ErrMsgInternalError,
	ErrCodeInvalidRequestBody:        ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package misticpay

import "encoding/json"

// Response is a 2xx answer from the gateway. Body is always valid JSON.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// relayBody turns whatever the gateway sent into a JSON document the caller can
// receive unchanged: JSON stays as is, anything else becomes a JSON string.
func relayBody(raw []byte) json.RawMessage {
	if len(raw) > 0 && json.Valid(raw) {
		return json.RawMessage(raw)
	}

	encoded, _ := json.Marshal(string(raw))
	return encoded
}

package httpclient

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const (
	undefinedErrorMessage    = "Undefined error"
	undefinedResponseMessage = "Undefined response"
)

var businessEnvelopeKeys = []string{"success", "result", "msg", "status"}

// normalize turns a response on the success channel into an envelope. Bodies
// following the business convention {success, result, msg, status} are
// unwrapped; anything else is wrapped as a raw transport response.
func normalize(status int, body []byte) *contracts.HTTPEnvelope {
	parsed := parseObject(body)
	if !parsed.Exists() || !hasAny(parsed, businessEnvelopeKeys) {
		return rawEnvelope(status, body, http.StatusText(status))
	}

	env := &contracts.HTTPEnvelope{
		Error:  contracts.HTTPEnvelopeError{Message: messageOf(parsed.Get("msg"))},
		Status: parsed.Get("success").Bool(),
	}
	if code := parsed.Get("status"); code.Type == gjson.Number {
		env.Code = int(code.Int())
	}
	if result := parsed.Get("result"); result.Exists() {
		env.Data = json.RawMessage(result.Raw)
	}
	return env
}

// failureEnvelope wraps a response received with an HTTP error status. The
// message prefers what the server wrote over the status text.
func failureEnvelope(status int, body []byte) *contracts.HTTPEnvelope {
	message := http.StatusText(status)
	if parsed := parseObject(body); parsed.Exists() {
		for _, key := range []string{"msg", "message", "error.message"} {
			if v := parsed.Get(key); v.Exists() && v.Type != gjson.Null {
				message = messageOf(v)
				break
			}
		}
	}
	return rawEnvelope(status, body, message)
}

func rawEnvelope(status int, body []byte, message string) *contracts.HTTPEnvelope {
	if message == "" {
		message = undefinedErrorMessage
	}
	return &contracts.HTTPEnvelope{
		Code:   status,
		Data:   rawData(body),
		Error:  contracts.HTTPEnvelopeError{Message: message},
		Status: false,
	}
}

func undefinedResponse() *contracts.HTTPEnvelope {
	return &contracts.HTTPEnvelope{
		Code:   -1,
		Data:   json.RawMessage("{}"),
		Error:  contracts.HTTPEnvelopeError{Message: undefinedResponseMessage},
		Status: false,
	}
}

// bodyCode is the application supplied code field, zero when absent.
func bodyCode(body []byte) int {
	code := parseObject(body).Get("code")
	if code.Type != gjson.Number {
		return 0
	}
	return int(code.Int())
}

func messageOf(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return undefinedErrorMessage
	case gjson.JSON:
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(v.Raw)); err != nil {
			return v.Raw
		}
		return compact.String()
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	default:
		return undefinedErrorMessage
	}
}

func rawData(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if gjson.ValidBytes(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}

func parseObject(body []byte) gjson.Result {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return gjson.Result{}
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return gjson.Result{}
	}
	return parsed
}

func hasAny(obj gjson.Result, keys []string) bool {
	for _, key := range keys {
		if obj.Get(key).Exists() {
			return true
		}
	}
	return false
}

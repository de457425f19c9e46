package gateway

import (
	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/errors"
	"github.com/shuldan/underc0de-admin/pkg/httpclient"
)

// Expect returns the envelope data of a successful call. A false status, on
// either channel of the client, becomes a *ResponseError carrying
// env.Error.Message.
func Expect(env *contracts.HTTPEnvelope, err error) (gjson.Result, error) {
	return ExpectOr(env, err, "")
}

// ExpectOr is Expect with a message used when the server sent none.
func ExpectOr(env *contracts.HTTPEnvelope, err error, fallback string) (gjson.Result, error) {
	if err != nil {
		var re *httpclient.ResponseError
		if !errors.As(err, &re) {
			return gjson.Result{}, err
		}
		return gjson.Result{}, &ResponseError{
			Envelope: re.Envelope,
			message:  messageOr(re.Envelope, fallback),
			cause:    err,
		}
	}
	if env == nil {
		return gjson.Result{}, malformed("$", "no envelope")
	}
	if !env.Status {
		return gjson.Result{}, &ResponseError{Envelope: env, message: messageOr(env, fallback)}
	}
	return gjson.ParseBytes(env.Data), nil
}

func messageOr(env *contracts.HTTPEnvelope, fallback string) string {
	switch {
	case env != nil && env.Error.Message != "":
		return env.Error.Message
	case fallback != "":
		return fallback
	case env == nil:
		return "Undefined response"
	default:
		return ""
	}
}

// Items returns the elements of an array payload.
func Items(data gjson.Result) ([]gjson.Result, error) {
	if !data.IsArray() {
		return nil, malformed("$", "expected a list")
	}
	return data.Array(), nil
}

// Object checks data is a JSON object.
func Object(data gjson.Result) (gjson.Result, error) {
	if !data.IsObject() {
		return gjson.Result{}, malformed("$", "expected an object")
	}
	return data, nil
}

// Require returns the field at path, failing when it is missing or null.
func Require(obj gjson.Result, path string) (gjson.Result, error) {
	v := obj.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return gjson.Result{}, malformed(path, "missing field")
	}
	return v, nil
}

// First returns the first present, non-null field among paths.
func First(obj gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// OptionalFloat returns nil for a missing or null number.
func OptionalFloat(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

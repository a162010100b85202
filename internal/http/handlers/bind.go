package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidJSON = errors.New("body is not valid JSON")
	errNotObject   = errors.New("body must be a JSON object")
)

// BindObject decodes the request body into a generic JSON object. Numbers
// stay float64 so the schema sees exactly what the client sent.
func BindObject(ctx *gin.Context) (map[string]any, bool) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondTooLarge(ctx, "Request body too large")
			return nil, false
		}
		RespondBadRequest(ctx, "Could not read request body", nil)
		return nil, false
	}

	out, err := decodeObject(body)
	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", parseBindError(err))
		return nil, false
	}

	return out, true
}

func decodeObject(body []byte) (map[string]any, error) {
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func parseBindError(err error) interface{} {
	if errors.Is(err, errInvalidJSON) {
		return gin.H{
			"json": "invalid_json_syntax",
		}
	}

	if errors.Is(err, errNotObject) {
		return gin.H{
			"json": "invalid_json_type",
		}
	}

	// final fallback if the error could not be deciphered
	return gin.H{"reason": err.Error()}
}

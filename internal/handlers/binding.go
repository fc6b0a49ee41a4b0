package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-invest/internal/projection"
)

// ErrEmptyBody is returned by BindNestedOrFlat when the request has no body
var ErrEmptyBody = errors.New("request body is empty")

// MaxBodyBytes caps JSON request bodies
const MaxBodyBytes int64 = 1 << 20

// limitBody makes reads past MaxBodyBytes fail with *http.MaxBytesError
func limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	}
}

// BindNestedOrFlat attempts to bind the request body to obj.
// It first checks if the body contains a nested object with the given key (e.g. {"parameters": {...}}).
// If so, it binds that nested object to obj.
// If not, or if the key is missing, it attempts to bind the entire body to obj (e.g. {...}).
// Fields missing from the body keep the values obj already holds.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		limitBody(c)
		var err error
		if bodyBytes, err = io.ReadAll(c.Request.Body); err != nil {
			return fmt.Errorf("failed to read request body: %w", err)
		}
	}
	// Restore body for future binding or subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return ErrEmptyBody
	}

	// 1. Try Nested Structure { "key": { ... } }
	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			// If the nested object is invalid for the target struct, we return that error.
			return json.Unmarshal(val, obj)
		}
	}

	// 2. Fallback to Flat Structure { ... }
	return json.Unmarshal(bodyBytes, obj)
}

// bindParameters reads projection parameters on top of the defaults, so a
// request only needs the fields it wants to change. An empty body runs
// the defaults.
func bindParameters(c *gin.Context) (projection.Parameters, error) {
	p := projection.DefaultParameters()
	if err := BindNestedOrFlat(c, "parameters", &p); err != nil && !errors.Is(err, ErrEmptyBody) {
		return p, err
	}
	return p, nil
}

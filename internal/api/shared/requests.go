package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

var (
	// ErrMalformedBody indicates that the request body could not be decoded.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge indicates that the request body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeJSON decodes the request body into the given struct.
// An empty body leaves v untouched.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return classifyDecodeError(err)
	}
	return nil
}

// DecodeBody decodes a JSON or application/x-www-form-urlencoded body into v.
// Form fields are matched against v's json tags; only flat string fields
// can be populated from a form.
func DecodeBody(r *http.Request, v interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		return DecodeJSON(r, v)
	}

	if err := r.ParseForm(); err != nil {
		return classifyDecodeError(err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func classifyDecodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

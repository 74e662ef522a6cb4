// Package assets resolves image references into bytes ready for embedding in a PDF.
package assets

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// dataURI is a decoded RFC 2397 data URI.
type dataURI struct {
	MediaType string
	Data      []byte
}

// isDataURI reports whether ref is an inline data URI rather than a remote URL.
func isDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// parseDataURI decodes "data:[<mediatype>][;base64],<data>".
func parseDataURI(ref string) (*dataURI, error) {
	if !isDataURI(ref) {
		return nil, &Error{Ref: abbreviate(ref), Message: "not a data URI"}
	}
	meta, payload, ok := strings.Cut(ref[5:], ",")
	if !ok {
		return nil, &Error{Ref: abbreviate(ref), Message: "data URI has no payload separator"}
	}

	params := strings.Split(meta, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if !isBase64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return nil, &Error{Ref: abbreviate(ref), Message: "invalid percent-encoding", Cause: err}
		}
		return &dataURI{MediaType: mediaType, Data: []byte(decoded)}, nil
	}

	// Editors sometimes wrap or pad base64 payloads loosely
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, &Error{Ref: abbreviate(ref), Message: "invalid base64 payload", Cause: err}
	}
	return &dataURI{MediaType: mediaType, Data: data}, nil
}

// abbreviate shortens long references (mostly data URIs) for logs and errors.
func abbreviate(ref string) string {
	const limit = 64
	if len(ref) <= limit {
		return ref
	}
	return ref[:limit] + "..."
}

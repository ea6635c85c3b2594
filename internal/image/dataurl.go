package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const dataURLPrefix = "data:"

// DataURL encodes data as a base64 data URL. An empty mime type is sniffed
// from the content.
func DataURL(mime string, data []byte) Reference {
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return Reference(dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// IsDataURL reports whether ref carries its image inline
func IsDataURL(ref Reference) bool {
	return strings.HasPrefix(string(ref), dataURLPrefix)
}

// DecodeDataURL returns the payload and mime type of a base64 data URL
func DecodeDataURL(ref Reference) ([]byte, string, error) {
	s := string(ref)
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, "", errors.New("not a data URL")
	}

	header, payload, ok := strings.Cut(s[len(dataURLPrefix):], ",")
	if !ok {
		return nil, "", errors.New("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, "", errors.New("data URL is not base64 encoded")
	}
	if mime == "" {
		mime = "text/plain"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URL: %w", err)
	}
	return data, mime, nil
}

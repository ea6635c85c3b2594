package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDataURL(t *testing.T) {
	ref := DataURL("", pngHeader)
	assert.True(t, IsDataURL(ref))
	assert.Contains(t, string(ref), "data:image/png;base64,")

	data, mime, err := DecodeDataURL(ref)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader, data)

	ref = DataURL("image/jpeg", []byte{1, 2, 3})
	_, mime, err = DecodeDataURL(ref)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
	}{
		{"http url", "https://example.com/a.png"},
		{"no payload", "data:image/png;base64"},
		{"not base64", "data:image/png,rawtext"},
		{"bad payload", "data:image/png;base64,***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURL(tt.ref)
			assert.Error(t, err)
		})
	}
}

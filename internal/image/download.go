package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageBytes is the largest image Fetch and Save accept (10MB)
const MaxImageBytes int64 = 10 * 1024 * 1024

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Fetch returns the image bytes and mime type behind ref, downloading it
// when it is not a data URL
func Fetch(ctx context.Context, ref Reference) ([]byte, string, error) {
	if ref == "" {
		return nil, "", errors.New("empty image reference")
	}
	if IsDataURL(ref) {
		data, mime, err := DecodeDataURL(ref)
		if err != nil {
			return nil, "", err
		}
		if int64(len(data)) > MaxImageBytes {
			return nil, "", fmt.Errorf("image exceeds maximum size of %d bytes", MaxImageBytes)
		}
		return data, mime, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(ref), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := readLimited(resp.Body, MaxImageBytes)
	if err != nil {
		return nil, "", err
	}

	mime := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

// readLimited reads r fully, failing when it holds more than limit bytes
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", limit)
	}
	return data, nil
}

// Save writes the image behind ref to dir/name.<ext>, creating dir, and
// returns the written path
func Save(ctx context.Context, ref Reference, dir, name string) (string, error) {
	data, mime, err := Fetch(ctx, ref)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	outputPath := filepath.Join(dir, name+extensionFor(mime))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return outputPath, nil
}

func extensionFor(mime string) string {
	mime, _, _ = strings.Cut(mime, ";")
	switch strings.TrimSpace(strings.ToLower(mime)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

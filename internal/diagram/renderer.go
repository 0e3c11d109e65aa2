package diagram

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// plantUMLAlphabet is the base64 variant PlantUML servers expect in URLs
const plantUMLAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var plantUMLEncoding = base64.NewEncoding(plantUMLAlphabet).WithPadding(base64.NoPadding)

// Renderer fetches PNG images for PlantUML source from a PlantUML server
type Renderer struct {
	serverURL string
	http      *http.Client
}

// NewRenderer returns nil when serverURL is empty so callers can skip rendering
func NewRenderer(serverURL string, timeout time.Duration) *Renderer {
	if strings.TrimSpace(serverURL) == "" {
		return nil
	}
	return &Renderer{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: timeout},
	}
}

// Render returns a base64 PNG and its MIME type
func (r *Renderer) Render(ctx context.Context, source string) (string, string, error) {
	encoded, err := Encode(source)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.serverURL+"/png/"+encoded, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("plantuml request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("plantuml server returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", "", fmt.Errorf("read image: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = defaultMimeType
	}
	return base64.StdEncoding.EncodeToString(data), mime, nil
}

// Encode deflates source and encodes it the way PlantUML URLs require
func Encode(source string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write([]byte(source)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return plantUMLEncoding.EncodeToString(buf.Bytes()), nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studentres/resources-api/pkg/config"
)

// AssetHost talks to the long-term file host. Approved assets live there;
// URLs from the host are recognizable by a domain substring.
type AssetHost struct {
	uploadURL    string
	domainMarker string
	uploadPreset string
	httpClient   *http.Client
	logger       *zap.Logger
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

type hostErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewAssetHost constructs an asset host client.
func NewAssetHost(cfg config.AssetHostConfig, timeout time.Duration, logger *zap.Logger) *AssetHost {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHost{
		uploadURL:    cfg.UploadURL,
		domainMarker: cfg.DomainMarker,
		uploadPreset: cfg.UploadPreset,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Hosted reports whether the URL already points at the asset host, in which
// case approval reuses it without re-uploading.
func (c *AssetHost) Hosted(url string) bool {
	return strings.Contains(url, c.domainMarker)
}

// Upload sends the file bytes as multipart form data and returns the stable
// URL the host assigned.
func (c *AssetHost) Upload(ctx context.Context, data []byte, fileName, folder string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var hostErr hostErrorResponse
		if err := json.Unmarshal(raw, &hostErr); err == nil && hostErr.Error.Message != "" {
			return "", fmt.Errorf("upload %s rejected (%d): %s", fileName, resp.StatusCode, hostErr.Error.Message)
		}
		return "", fmt.Errorf("upload %s failed with status %d", fileName, resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if uploaded.SecureURL == "" {
		return "", fmt.Errorf("upload response for %s missing secure_url", fileName)
	}

	c.logger.Debug("asset uploaded",
		zap.String("file", fileName),
		zap.String("folder", folder))
	return uploaded.SecureURL, nil
}

// Fetch downloads the raw bytes behind a possibly-transient source URL.
func (c *AssetHost) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s failed with status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch %s returned no data", rawURL)
	}
	return data, nil
}

package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrPinataMalformedResponse indicates the pinning service answered 200 but
// without a usable content hash.
var ErrPinataMalformedResponse = errors.New("pinata: response missing IpfsHash")

// PinataClient uploads files to IPFS through Pinata's pinning API
type PinataClient struct {
	baseURL    string
	jwt        string
	httpClient *http.Client
}

// NewPinataClient creates a new Pinata client
func NewPinataClient(baseURL, jwt string, timeout time.Duration) *PinataClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PinataClient{
		baseURL: baseURL,
		jwt:     jwt,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// pinataUploadResponse pinFileToIPFS response
type pinataUploadResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataErrorResponse struct {
	Error struct {
		Reason  string `json:"reason"`
		Details string `json:"details"`
	} `json:"error"`
}

// PinFile pins raw file bytes and returns the content hash (CID)
func (c *PinataClient) PinFile(ctx context.Context, data []byte, name string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file data: %w", err)
	}

	metadata, _ := json.Marshal(map[string]interface{}{"name": name})
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", fmt.Errorf("failed to write metadata field: %w", err)
	}

	options, _ := json.Marshal(map[string]interface{}{"cidVersion": 1})
	if err := writer.WriteField("pinataOptions", string(options)); err != nil {
		return "", fmt.Errorf("failed to write options field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.baseURL + "/pinning/pinFileToIPFS"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read pinata response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp pinataErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Reason != "" {
			return "", fmt.Errorf("pinata returned %d: %s (%s)", resp.StatusCode, errResp.Error.Reason, errResp.Error.Details)
		}
		return "", fmt.Errorf("pinata returned %d: %s", resp.StatusCode, string(respBody))
	}

	var upload pinataUploadResponse
	if err := json.Unmarshal(respBody, &upload); err != nil {
		return "", fmt.Errorf("failed to decode pinata response: %w", err)
	}
	if upload.IpfsHash == "" {
		return "", ErrPinataMalformedResponse
	}

	return upload.IpfsHash, nil
}

// Package httpsigner is a JSON-over-HTTP client for the remote threshold signer.
package httpsigner

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/remote"
)

const (
	pathGetPublicKey    = "/v1/keys/get"
	pathCreatePublicKey = "/v1/keys/create"
	pathSign            = "/v1/sign"

	compressedPublicKeyLength = 33
	rawSignatureLength        = 64
	digestLength              = 32

	maxErrorBodyBytes = 4096
	maxResponseBytes  = 1 << 20

	keyNotFoundMessage = "public key not found"
)

// statusError is a non-OK answer of the signer.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("signer returned non-OK status: %d, body: %s", e.status, e.message)
}

// isKeyNotFound reports whether the signer said the slot has no key yet. A bare
// 404 without that message, e.g. from a wrong base URL, does not count.
func isKeyNotFound(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	return strings.Contains(strings.ToLower(se.message), keyNotFoundMessage)
}

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements remote.Signer against the signer's HTTP API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient HTTPClient
}

var _ remote.Signer = (*Client)(nil)

// NewClient creates a signer client. A nil httpClient gets a default client with timeout.
func NewClient(baseURL string, token string, httpClient HTTPClient, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

// GetPublicKey fetches the compressed public key of slot.
func (c *Client) GetPublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error) {
	var resp KeyResponse
	if err := c.post(ctx, pathGetPublicKey, &KeyRequest{Owner: owner, Slot: slot}, &resp); err != nil {
		if isKeyNotFound(err) {
			return nil, remote.ErrPublicKeyNotFound
		}
		return nil, remote.Unavailable("get_public_key", err)
	}

	publicKey, err := decodeHex(resp.PublicKey, compressedPublicKeyLength)
	if err != nil {
		return nil, remote.Unavailable("get_public_key", err)
	}

	return publicKey, nil
}

// CreatePublicKey provisions the key of slot.
func (c *Client) CreatePublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error) {
	var resp KeyResponse
	if err := c.post(ctx, pathCreatePublicKey, &KeyRequest{Owner: owner, Slot: slot}, &resp); err != nil {
		return nil, remote.Unavailable("create_public_key", err)
	}

	publicKey, err := decodeHex(resp.PublicKey, compressedPublicKeyLength)
	if err != nil {
		return nil, remote.Unavailable("create_public_key", err)
	}

	return publicKey, nil
}

// Sign requests a raw r||s signature of digest.
func (c *Client) Sign(ctx context.Context, owner string, digest []byte, slot uint32) ([]byte, error) {
	if len(digest) != digestLength {
		return nil, errors.Errorf("digest must be %d bytes, got %d", digestLength, len(digest))
	}

	var resp SignResponse
	req := &SignRequest{Owner: owner, Slot: slot, Digest: hex.EncodeToString(digest)}
	if err := c.post(ctx, pathSign, req, &resp); err != nil {
		return nil, remote.Unavailable("sign", err)
	}

	signature, err := decodeHex(resp.Signature, rawSignatureLength)
	if err != nil {
		return nil, remote.Unavailable("sign", err)
	}

	return signature, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	reqJSON, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(reqJSON))
	if err != nil {
		return errors.Wrap(err, "failed to create HTTP request")
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	log := util.LogFromContext(ctx).With().
		Str("component", "httpsigner").
		Str("path", path).
		Str("signer_request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Msg("Signer request failed")
		return errors.Wrap(err, "failed to send request to signer")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrap(err, "failed to read signer response")
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Signer request completed")

	if resp.StatusCode != http.StatusOK {
		return errors.WithStack(&statusError{status: resp.StatusCode, message: errorMessage(bodyBytes)})
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return errors.Wrap(err, "failed to decode signer response")
	}

	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return string(body)
}

func decodeHex(s string, expectedLength int) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode hex payload")
	}
	if len(b) != expectedLength {
		return nil, errors.Errorf("expected %d bytes, got %d", expectedLength, len(b))
	}
	return b, nil
}

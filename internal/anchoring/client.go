// Package anchoring records a fingerprint of each assessment result with
// an external ledger service for later tamper-evidence checks. The ledger
// is best-effort auditability, never a gate: callers must treat any error
// from Anchor as a signal to fall back to the simulated outcome.
package anchoring

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"wellmind/internal/config"
	"wellmind/internal/models"
)

// ErrUnavailable reports that the ledger service could not confirm the
// anchor: transport failure, timeout, non-2xx response, or the client
// being disabled by configuration.
var ErrUnavailable = errors.New("anchoring service unavailable")

// Client wraps the outbound ledger call. One attempt per record; the
// http.Client timeout bounds how long a submission can wait on the ledger.
type Client struct {
	endpoint string
	enabled  bool
	client   *http.Client
}

// NewClient creates a new anchoring client
func NewClient(cfg *config.AnchoringConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		enabled:  cfg.Enabled && cfg.Endpoint != "",
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type anchorRequest struct {
	Reference   string `json:"reference"`
	Fingerprint string `json:"fingerprint"`
}

type anchorResponse struct {
	ReceiptID string `json:"receipt_id"`
}

// Anchor fingerprints the record and submits it to the ledger. It returns
// the external receipt id, or an error wrapping ErrUnavailable on any
// failure.
func (c *Client) Anchor(rec *models.AssessmentRecord) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("%w: client disabled", ErrUnavailable)
	}

	reqBody := anchorRequest{
		Reference:   uuid.NewString(),
		Fingerprint: Fingerprint(rec),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal anchor request: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close anchor response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		slog.Error("Ledger returned non-2xx status", "status", resp.StatusCode, "body", string(bodyBytes))
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var anchorResp anchorResponse
	if err := json.NewDecoder(resp.Body).Decode(&anchorResp); err != nil {
		return "", fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}
	if anchorResp.ReceiptID == "" {
		return "", fmt.Errorf("%w: empty receipt", ErrUnavailable)
	}

	return anchorResp.ReceiptID, nil
}

// Fingerprint computes the SHA-256 digest of a canonical rendering of the
// record's immutable fields.
func Fingerprint(rec *models.AssessmentRecord) string {
	canonical := struct {
		RecordID    uint   `json:"record_id"`
		EmployeeID  uint   `json:"employee_id"`
		RiskScore   int    `json:"risk_score"`
		Label       string `json:"label"`
		WorkHours   int    `json:"work_hours"`
		StressLevel int    `json:"stress_level"`
		CreatedAt   int64  `json:"created_at"`
	}{
		RecordID:    rec.ID,
		EmployeeID:  rec.EmployeeID,
		RiskScore:   rec.RiskScore,
		Label:       rec.Label,
		WorkHours:   rec.WorkHours,
		StressLevel: rec.StressLevel,
		CreatedAt:   rec.CreatedAt.UTC().Unix(),
	}

	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

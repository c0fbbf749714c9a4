package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/grmcai/grmc-api/internal/domain/reports"
)

// Sender ships a rendered report to the configured delivery endpoint.
type Sender struct {
	endpoint string
	client   *http.Client
}

func NewSender(endpoint string) *Sender {
	return &Sender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Sender) Send(ctx context.Context, d reports.Delivery) error {
	if s.endpoint == "" {
		return fmt.Errorf("%w: no delivery endpoint configured", reports.ErrSendFailed)
	}

	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%w: %v", reports.ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", reports.ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", reports.ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: delivery endpoint returned %d", reports.ErrSendFailed, resp.StatusCode)
	}
	return nil
}

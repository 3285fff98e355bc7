// internal/app/system/push/http.go
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPSender posts notifications to the relay's /api/send-push endpoint.
type HTTPSender struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPSender builds a sender for the given relay base URL
// (e.g. "https://push.homeclass.app").
func NewHTTPSender(baseURL string, logger *zap.Logger) *HTTPSender {
	return &HTTPSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     logger,
	}
}

// Send posts one notification. A non-2xx response is an error; the
// caller (the notify dispatcher) logs and drops it.
func (s *HTTPSender) Send(ctx context.Context, n Notification) (Result, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/send-push", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("push relay returned %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		// The relay reached the device(s) but replied with an
		// unexpected body; treat as delivered with unknown count.
		s.log.Debug("push relay response not decodable", zap.Error(err))
		return Result{}, nil
	}
	return res, nil
}

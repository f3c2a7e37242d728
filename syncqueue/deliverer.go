package syncqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sprintnotes/sprintnotes/models"
)

// HTTPDeliverer posts operations to the hosted sync ingest endpoint.
type HTTPDeliverer struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPDeliverer(baseURL, token string) *HTTPDeliverer {
	return &HTTPDeliverer{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type deliverRequest struct {
	Type      models.OpType     `json:"type"`
	Entity    models.EntityKind `json:"entity"`
	EntityID  string            `json:"entityId"`
	Data      json.RawMessage   `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func (d *HTTPDeliverer) Deliver(ctx context.Context, op models.SyncOperation) error {
	body, err := json.Marshal(deliverRequest{
		Type:      op.Type,
		Entity:    op.Entity,
		EntityID:  op.EntityID,
		Data:      op.Data,
		Timestamp: op.Timestamp,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+"/api/sync", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.Token)

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("syncqueue: remote rejected op %d: %s: %s", op.ID, resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}

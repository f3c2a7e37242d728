package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sprintnotes/sprintnotes/models"
)

// RemoteFetch builds a FetchFunc over the hosted messages endpoint, ready
// to hand to a Poller for one match's conversation.
func RemoteFetch(baseURL, token, matchID string) FetchFunc {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(ctx context.Context) ([]models.Message, error) {
		body, err := json.Marshal(map[string]string{"matchId": matchID})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/messages/get", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("chat: fetch messages: %s", resp.Status)
		}

		var out struct {
			Messages []models.Message `json:"messages"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return out.Messages, nil
	}
}

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Config holds settings for the identity service client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type httpResolver struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewHTTPResolver returns a SpeakerInfoResolver backed by the identity
// service. Every lookup is bounded by the configured timeout.
func NewHTTPResolver(cfg Config, logger *slog.Logger) domain.SpeakerInfoResolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpResolver{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Resolve looks up display metadata for the user. Any failure yields
// ok=false; the caller proceeds without speaker metadata.
func (r *httpResolver) Resolve(ctx context.Context, userID string) (*domain.SpeakerInfo, bool) {
	url := fmt.Sprintf("%s/users/%s", r.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.logger.WarnContext(ctx, "speaker info request failed", "user_id", userID, "err", err)
		return nil, false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.WarnContext(ctx, "speaker info request failed", "user_id", userID, "err", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "speaker info lookup returned non-200", "user_id", userID, "status", resp.StatusCode)
		return nil, false
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		r.logger.WarnContext(ctx, "speaker info payload malformed", "user_id", userID, "err", err)
		return nil, false
	}
	return &domain.SpeakerInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, true
}

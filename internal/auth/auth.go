package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"price-catalog/internal/errs"
	"price-catalog/internal/redisclient"
	"price-catalog/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityVerifier validates an identity provider's ID token and returns the
// subject uid.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// Service exchanges verified ID tokens for opaque session tokens held in
// Redis. Catalog rows never store identity data; the uid only attributes
// write requests.
type Service struct {
	verifier   IdentityVerifier
	redis      *redisclient.Client
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(verifier IdentityVerifier, redis *redisclient.Client, sessionTTL time.Duration) *Service {
	return &Service{
		verifier:   verifier,
		redis:      redis,
		sessionTTL: sessionTTL,
		logger:     util.GetLogger(),
	}
}

// Session is an issued session token and its lifetime
type Session struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// CreateSession verifies the ID token and mints a session token
func (s *Service) CreateSession(ctx context.Context, idToken string) (*Session, error) {
	uid, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errs.Wrap(errs.Unauthenticated, err, "token verification failed")
	}

	token := uuid.New().String()
	if err := s.redis.SetSession(ctx, token, uid, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Session created", zap.String("uid", uid))
	return &Session{Token: token, ExpiresIn: s.sessionTTL}, nil
}

// VerifySession resolves a session token to a uid
func (s *Service) VerifySession(ctx context.Context, token string) (string, error) {
	uid, err := s.redis.GetSession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if uid == "" {
		return "", errs.New(errs.Unauthenticated, "invalid or expired session")
	}
	return uid, nil
}

// SessionTTL returns the configured session lifetime
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// HTTPVerifier verifies ID tokens against a remote identity endpoint.
type HTTPVerifier struct {
	verifyURL  string
	httpClient *http.Client
}

// NewHTTPVerifier creates a verifier for the given endpoint
func NewHTTPVerifier(verifyURL string) *HTTPVerifier {
	return &HTTPVerifier{
		verifyURL: verifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyIDToken posts the token to the identity endpoint and returns the uid
func (v *HTTPVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"token": idToken})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var body struct {
		UID string `json:"uid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode identity response: %w", err)
	}
	if body.UID == "" {
		return "", fmt.Errorf("identity provider returned empty uid")
	}
	return body.UID, nil
}

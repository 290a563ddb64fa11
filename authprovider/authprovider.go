// Package authprovider talks to the managed identity service that vendors log
// in through. The service only needs the admin surface: look up a user by
// email, create one, update one, delete one.
package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rental-service/pkg/httpclient"
	"rental-service/pkg/logger"
)

// User is an identity held by the auth provider.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// UserAttributes are the mutable fields of an identity.
type UserAttributes struct {
	Email    string         `json:"email,omitempty"`
	Password string         `json:"password,omitempty"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// Client is the admin API surface used for account provisioning. It is an
// injected dependency so tests can substitute a fake.
type Client interface {
	// FindUserByEmail returns the identity with the given email, or nil when
	// none exists.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	// CreateUser provisions a new identity.
	CreateUser(ctx context.Context, attrs UserAttributes) (*User, error)
	// UpdateUser modifies an existing identity.
	UpdateUser(ctx context.Context, id string, attrs UserAttributes) (*User, error)
	// DeleteUser removes an identity, used to roll back a failed provisioning.
	DeleteUser(ctx context.Context, id string) error
}

// Config holds the connection settings for the admin API.
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

type httpProvider struct {
	http   httpclient.HTTPClient
	logger logger.LoggerInterface
}

// New creates an HTTP-backed admin client.
func New(cfg Config, appLogger logger.LoggerInterface) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &httpProvider{
		http: httpclient.New(
			httpclient.WithBaseURL(cfg.BaseURL),
			httpclient.WithTimeout(timeout),
			httpclient.WithHeaders(map[string]string{
				"Authorization": "Bearer " + cfg.ServiceKey,
				"apikey":        cfg.ServiceKey,
			}),
		),
		logger: appLogger,
	}
}

// NewWithHTTPClient creates an admin client over a preconfigured HTTP client,
// used by tests.
func NewWithHTTPClient(http httpclient.HTTPClient, appLogger logger.LoggerInterface) Client {
	return &httpProvider{http: http, logger: appLogger}
}

// FindUserByEmail queries the admin user list filtered by email.
func (p *httpProvider) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	path := "/admin/users?email=" + url.QueryEscape(email)

	resp, err := p.http.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("auth provider list users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError("list users", resp)
	}

	var payload struct {
		Users []User `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("auth provider list users: decode response: %w", err)
	}

	for i := range payload.Users {
		if payload.Users[i].Email == email {
			return &payload.Users[i], nil
		}
	}
	return nil, nil
}

// CreateUser provisions a new identity.
func (p *httpProvider) CreateUser(ctx context.Context, attrs UserAttributes) (*User, error) {
	p.logger.InfoContext(ctx, "Creating auth provider user", "email", attrs.Email)

	resp, err := p.http.Post(ctx, "/admin/users", attrs, nil)
	if err != nil {
		return nil, fmt.Errorf("auth provider create user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, p.statusError("create user", resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth provider create user: decode response: %w", err)
	}
	return &user, nil
}

// UpdateUser modifies an existing identity.
func (p *httpProvider) UpdateUser(ctx context.Context, id string, attrs UserAttributes) (*User, error) {
	p.logger.InfoContext(ctx, "Updating auth provider user", "id", id)

	resp, err := p.http.Put(ctx, "/admin/users/"+url.PathEscape(id), attrs, nil)
	if err != nil {
		return nil, fmt.Errorf("auth provider update user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError("update user", resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth provider update user: decode response: %w", err)
	}
	return &user, nil
}

// DeleteUser removes an identity.
func (p *httpProvider) DeleteUser(ctx context.Context, id string) error {
	p.logger.InfoContext(ctx, "Deleting auth provider user", "id", id)

	resp, err := p.http.Delete(ctx, "/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("auth provider delete user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return p.statusError("delete user", resp)
	}
	return nil
}

// statusError reads a bounded amount of the error body for diagnostics.
func (p *httpProvider) statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("auth provider %s: unexpected status %d: %s", op, resp.StatusCode, string(body))
}

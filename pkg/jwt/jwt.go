// Package jwt provides a stateless JWT client for dashboard authentication.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultIssuer identifies tokens minted by this service.
	DefaultIssuer = "rental-service"

	// Roles carried in token claims.
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

var (
	// ErrSecretRequired is returned when the client is built without a signing secret.
	ErrSecretRequired = errors.New("token secret is required")
	// ErrInvalidToken is returned for expired, malformed or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the application claims embedded in every token.
type Claims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	VendorID string `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// Client signs and validates tokens.
type Client struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithSecret sets the HMAC signing secret.
func WithSecret(secret string) Option {
	return func(c *Client) {
		c.secret = []byte(secret)
	}
}

// WithIssuer overrides the token issuer.
func WithIssuer(issuer string) Option {
	return func(c *Client) {
		c.issuer = issuer
	}
}

// WithExpiry sets how long minted tokens remain valid.
func WithExpiry(expiry time.Duration) Option {
	return func(c *Client) {
		c.expiry = expiry
	}
}

// New creates a Client with the provided options.
func New(opts ...Option) (*Client, error) {
	client := &Client{
		issuer: DefaultIssuer,
		expiry: time.Hour,
	}

	for _, opt := range opts {
		opt(client)
	}

	if len(client.secret) == 0 {
		return nil, ErrSecretRequired
	}
	return client, nil
}

// GenerateToken mints a signed token for the given identity.
func (c *Client) GenerateToken(userID, role, vendorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Role:     role,
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// ValidateToken parses and verifies a token string and returns its claims.
func (c *Client) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry returns the configured token lifetime.
func (c *Client) Expiry() time.Duration {
	return c.expiry
}

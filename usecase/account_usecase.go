// Package usecase contains the business logic behind the HTTP handlers.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rental-service/authprovider"
	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/kafka"
	"rental-service/pkg/logger"
	"rental-service/pkg/password"
	"rental-service/pkg/secretbox"
)

// CredentialResult carries a freshly issued credential back to the caller.
// The plaintext password exists only in this value; it is never persisted
// or logged.
type CredentialResult struct {
	VendorID string `json:"vendor_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Linked is true when an existing provider identity was adopted
	// instead of a new one being created.
	Linked bool `json:"linked"`
}

// AccountUseCase defines the interface for vendor credential provisioning.
type AccountUseCase interface {
	// CreateAccount provisions an auth identity for the vendor and returns
	// the generated password exactly once.
	CreateAccount(ctx context.Context, vendorID, actorID string) (*CredentialResult, error)
	// ResetPassword rotates the password of an already provisioned account.
	ResetPassword(ctx context.Context, vendorID, actorID string) (*CredentialResult, error)
}

// accountUseCase implements the AccountUseCase interface.
type accountUseCase struct {
	vendorRepo   repository.Vendor
	activityRepo repository.ActivityLog
	provider     authprovider.Client
	box          *secretbox.Box
	producer     kafka.Producer
	logger       logger.LoggerInterface
	// passwordLength is the configured length of generated passwords.
	passwordLength int
	// deliveryTopic is the kafka topic the credential delivery worker consumes.
	deliveryTopic string
}

// NewAccountUseCase creates a new instance of accountUseCase.
func NewAccountUseCase(
	vendorRepo repository.Vendor,
	activityRepo repository.ActivityLog,
	provider authprovider.Client,
	box *secretbox.Box,
	producer kafka.Producer,
	appLogger logger.LoggerInterface,
	passwordLength int,
	deliveryTopic string,
) AccountUseCase {
	if passwordLength < password.MinLength {
		passwordLength = password.DefaultLength
	}
	return &accountUseCase{
		vendorRepo:     vendorRepo,
		activityRepo:   activityRepo,
		provider:       provider,
		box:            box,
		producer:       producer,
		logger:         appLogger,
		passwordLength: passwordLength,
		deliveryTopic:  deliveryTopic,
	}
}

// CreateAccount provisions an auth identity for the vendor. If the provider
// already holds an identity with the vendor's email it is linked instead of
// duplicated. A brand-new identity is rolled back if the database update
// that records it fails.
func (uc *accountUseCase) CreateAccount(ctx context.Context, vendorID, actorID string) (*CredentialResult, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	if vendor.Email == nil || *vendor.Email == "" {
		return nil, domain.ErrVendorEmailRequired
	}
	if vendor.AuthUserID != nil {
		uc.logger.WarnContext(ctx, "Vendor already has an account", "vendor_id", vendorID)
		return nil, domain.ErrAccountAlreadyExists
	}

	plaintext, err := password.Generate(uc.passwordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	metadata := map[string]any{
		"role":      "vendor",
		"vendor_id": vendor.ID,
	}

	existing, err := uc.provider.FindUserByEmail(ctx, *vendor.Email)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Auth provider lookup failed", "vendor_id", vendorID, "error", err)
		return nil, domain.ErrAuthProvider
	}

	var authUserID string
	linked := existing != nil
	if linked {
		// Adopt the orphaned identity: rotate its password and stamp our
		// metadata so the login maps back to this vendor.
		if _, err := uc.provider.UpdateUser(ctx, existing.ID, authprovider.UserAttributes{
			Password: plaintext,
			Metadata: metadata,
		}); err != nil {
			uc.logger.ErrorContext(ctx, "Auth provider update failed", "vendor_id", vendorID, "error", err)
			return nil, domain.ErrAuthProvider
		}
		authUserID = existing.ID
	} else {
		created, err := uc.provider.CreateUser(ctx, authprovider.UserAttributes{
			Email:    *vendor.Email,
			Password: plaintext,
			Metadata: metadata,
		})
		if err != nil {
			uc.logger.ErrorContext(ctx, "Auth provider create failed", "vendor_id", vendorID, "error", err)
			return nil, domain.ErrAuthProvider
		}
		authUserID = created.ID
	}

	ciphertext, err := uc.box.Encrypt(plaintext)
	if err != nil {
		uc.rollbackIdentity(ctx, authUserID, linked)
		return nil, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	if err := uc.vendorRepo.UpdateAccount(ctx, vendor.ID, authUserID, ciphertext, model.StatusAccountCreated); err != nil {
		uc.rollbackIdentity(ctx, authUserID, linked)
		return nil, err
	}

	uc.audit(ctx, model.ActionAccountCreated, vendor.ID, actorID, map[string]any{
		"email":  *vendor.Email,
		"linked": linked,
	})
	uc.publishDelivery(ctx, vendor.ID, *vendor.Email, model.ActionAccountCreated)

	return &CredentialResult{
		VendorID: vendor.ID,
		Email:    *vendor.Email,
		Password: plaintext,
		Linked:   linked,
	}, nil
}

// ResetPassword rotates the password of a provisioned account. The provider
// identity is updated first so a database failure leaves the vendor with a
// working (new) password and a stale envelope, never the reverse.
func (uc *accountUseCase) ResetPassword(ctx context.Context, vendorID, actorID string) (*CredentialResult, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	if vendor.AuthUserID == nil {
		return nil, domain.ErrAccountNotProvisioned
	}
	if vendor.Email == nil || *vendor.Email == "" {
		return nil, domain.ErrVendorEmailRequired
	}

	plaintext, err := password.Generate(uc.passwordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	if _, err := uc.provider.UpdateUser(ctx, *vendor.AuthUserID, authprovider.UserAttributes{
		Password: plaintext,
	}); err != nil {
		uc.logger.ErrorContext(ctx, "Auth provider password update failed", "vendor_id", vendorID, "error", err)
		return nil, domain.ErrAuthProvider
	}

	ciphertext, err := uc.box.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	if err := uc.vendorRepo.UpdateCiphertext(ctx, vendor.ID, ciphertext); err != nil {
		return nil, err
	}

	uc.audit(ctx, model.ActionPasswordReset, vendor.ID, actorID, map[string]any{
		"email": *vendor.Email,
	})
	uc.publishDelivery(ctx, vendor.ID, *vendor.Email, model.ActionPasswordReset)

	return &CredentialResult{
		VendorID: vendor.ID,
		Email:    *vendor.Email,
		Password: plaintext,
	}, nil
}

// rollbackIdentity deletes a provider identity that was created in this call
// and could not be recorded. Linked identities existed before the call and
// are left alone.
func (uc *accountUseCase) rollbackIdentity(ctx context.Context, authUserID string, linked bool) {
	if linked {
		return
	}
	if err := uc.provider.DeleteUser(ctx, authUserID); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to roll back auth provider identity", "auth_user_id", authUserID, "error", err)
	}
}

// audit appends an activity log entry. Audit failures are logged but never
// fail the operation that succeeded.
func (uc *accountUseCase) audit(ctx context.Context, action, vendorID, actorID string, details map[string]any) {
	payload, err := json.Marshal(model.SanitizeDetails(details))
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to marshal audit details", "action", action, "error", err)
		payload = []byte("{}")
	}

	entry := &model.ActivityLog{
		Action:     action,
		EntityType: "vendor",
		EntityID:   vendorID,
		Details:    string(payload),
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to write audit entry", "action", action, "vendor_id", vendorID, "error", err)
	}
}

// publishDelivery emits a credential-delivery event for the notification
// worker. Delivery is best-effort; the credential is already issued.
func (uc *accountUseCase) publishDelivery(ctx context.Context, vendorID, email, action string) {
	if uc.producer == nil || uc.deliveryTopic == "" {
		return
	}

	event := map[string]string{
		"vendor_id": vendorID,
		"email":     email,
		"action":    action,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to marshal delivery event", "vendor_id", vendorID, "error", err)
		return
	}
	uc.producer.ProduceAsync(ctx, uc.deliveryTopic, payload)
}

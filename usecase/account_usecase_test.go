package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"rental-service/authprovider"
	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/pkg/logger"
	"rental-service/pkg/secretbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBox(t *testing.T) *secretbox.Box {
	t.Helper()
	box, err := secretbox.New("unit-test-master-secret")
	require.NoError(t, err, "secretbox.New should succeed")
	return box
}

func testVendor(id, email string) *model.Vendor {
	v := &model.Vendor{
		ID:                 id,
		BusinessName:       "Jaya Trans",
		Slug:               "jaya-trans-ab12",
		RegistrationStatus: model.StatusFormSubmitted,
	}
	if email != "" {
		v.Email = &email
	}
	return v
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	vendorRepo := newFakeVendorRepo(vendor)
	activityRepo := &fakeActivityRepo{}
	provider := newFakeProvider()
	producer := &fakeProducer{}
	box := newTestBox(t)

	uc := NewAccountUseCase(vendorRepo, activityRepo, provider, box, producer, logger.NoOpLogger(), 16, "credential.delivery")

	result, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	require.NoError(t, err, "CreateAccount should succeed")
	require.NotNil(t, result, "Expected a credential result")

	assert.Equal(t, "owner@jayatrans.co.id", result.Email, "Result should carry the vendor email")
	assert.Len(t, result.Password, 16, "Password should use the configured length")
	assert.False(t, result.Linked, "A fresh identity should not be marked linked")

	require.Len(t, provider.created, 1, "Exactly one provider identity should be created")
	assert.Equal(t, "vendor", provider.created[0].Metadata["role"], "Identity metadata should carry the vendor role")
	assert.Equal(t, "vendor-1", provider.created[0].Metadata["vendor_id"], "Identity metadata should reference the vendor")

	require.NotNil(t, vendor.AuthUserID, "Auth identity should be recorded on the vendor")
	assert.Equal(t, "auth-user-1", *vendor.AuthUserID, "Recorded identity should match the provider's")
	assert.Equal(t, model.StatusAccountCreated, vendor.RegistrationStatus, "Status should advance to ACCOUNT_CREATED")
	assert.NotEmpty(t, vendor.PasswordCiphertext, "Ciphertext envelope should be persisted")
	assert.NotContains(t, vendor.PasswordCiphertext, result.Password, "Plaintext must never appear in the envelope")

	plaintext, err := box.Decrypt(vendor.PasswordCiphertext)
	require.NoError(t, err, "Stored envelope should decrypt")
	assert.Equal(t, result.Password, plaintext, "Envelope should round-trip the issued password")

	require.Len(t, activityRepo.entries, 1, "An audit entry should be written")
	assert.Equal(t, model.ActionAccountCreated, activityRepo.entries[0].Action, "Audit action should be ACCOUNT_CREATED")

	require.Len(t, producer.topics, 1, "A delivery event should be published")
	assert.Equal(t, "credential.delivery", producer.topics[0], "Event should use the configured topic")
}

func TestAccountUseCase_CreateAccount_VendorNotFound(t *testing.T) {
	uc := NewAccountUseCase(newFakeVendorRepo(), &fakeActivityRepo{}, newFakeProvider(), newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "missing", "admin-1")
	assert.ErrorIs(t, err, domain.ErrVendorNotFound, "Unknown vendor should map to ErrVendorNotFound")
}

func TestAccountUseCase_CreateAccount_NoEmail(t *testing.T) {
	vendorRepo := newFakeVendorRepo(testVendor("vendor-1", ""))
	uc := NewAccountUseCase(vendorRepo, &fakeActivityRepo{}, newFakeProvider(), newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrVendorEmailRequired, "Vendor without email should be rejected")
}

func TestAccountUseCase_CreateAccount_AlreadyProvisioned(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	existing := "auth-user-9"
	vendor.AuthUserID = &existing

	uc := NewAccountUseCase(newFakeVendorRepo(vendor), &fakeActivityRepo{}, newFakeProvider(), newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrAccountAlreadyExists, "A second provisioning should conflict")
}

func TestAccountUseCase_CreateAccount_LinksExistingIdentity(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	provider := newFakeProvider()
	provider.existing["owner@jayatrans.co.id"] = &authprovider.User{
		ID:    "orphan-7",
		Email: "owner@jayatrans.co.id",
	}

	uc := NewAccountUseCase(newFakeVendorRepo(vendor), &fakeActivityRepo{}, provider, newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	result, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	require.NoError(t, err, "Linking an existing identity should succeed")

	assert.True(t, result.Linked, "Result should be marked linked")
	assert.Empty(t, provider.created, "No new identity should be created")
	require.Contains(t, provider.updated, "orphan-7", "Existing identity should be updated")
	assert.Equal(t, "vendor-1", provider.updated["orphan-7"].Metadata["vendor_id"], "Metadata should be stamped onto the linked identity")
	require.NotNil(t, vendor.AuthUserID, "Linked identity should be recorded")
	assert.Equal(t, "orphan-7", *vendor.AuthUserID, "Vendor should reference the linked identity")
}

func TestAccountUseCase_CreateAccount_RollsBackOnDBFailure(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	vendorRepo := newFakeVendorRepo(vendor)
	vendorRepo.updateAccountFn = func(ctx context.Context, id, authUserID, ciphertext, status string) error {
		return errors.New("connection reset")
	}
	provider := newFakeProvider()

	uc := NewAccountUseCase(vendorRepo, &fakeActivityRepo{}, provider, newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	require.Error(t, err, "A database failure should surface")
	assert.Equal(t, []string{"auth-user-1"}, provider.deleted, "The freshly created identity should be rolled back")
}

func TestAccountUseCase_CreateAccount_NoRollbackForLinkedIdentity(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	vendorRepo := newFakeVendorRepo(vendor)
	vendorRepo.updateAccountFn = func(ctx context.Context, id, authUserID, ciphertext, status string) error {
		return errors.New("connection reset")
	}
	provider := newFakeProvider()
	provider.existing["owner@jayatrans.co.id"] = &authprovider.User{ID: "orphan-7", Email: "owner@jayatrans.co.id"}

	uc := NewAccountUseCase(vendorRepo, &fakeActivityRepo{}, provider, newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	require.Error(t, err, "A database failure should surface")
	assert.Empty(t, provider.deleted, "A linked identity predates the call and must not be deleted")
}

func TestAccountUseCase_CreateAccount_ProviderFailure(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	provider := newFakeProvider()
	provider.createErr = errors.New("upstream 500")

	uc := NewAccountUseCase(newFakeVendorRepo(vendor), &fakeActivityRepo{}, provider, newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrAuthProvider, "Provider failures should map to the 502 error")
	assert.Nil(t, vendor.AuthUserID, "Nothing should be recorded on failure")
}

func TestAccountUseCase_AuditDetailsAreSanitized(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	activityRepo := &fakeActivityRepo{}

	uc := NewAccountUseCase(newFakeVendorRepo(vendor), activityRepo, newFakeProvider(), newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	result, err := uc.CreateAccount(context.Background(), "vendor-1", "admin-1")
	require.NoError(t, err, "CreateAccount should succeed")
	require.Len(t, activityRepo.entries, 1, "An audit entry should be written")

	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(activityRepo.entries[0].Details), &details), "Details should be valid JSON")
	assert.NotContains(t, activityRepo.entries[0].Details, result.Password, "Plaintext must never reach the audit trail")
	assert.NotContains(t, details, "password", "No password key should survive sanitization")
	assert.Equal(t, "owner@jayatrans.co.id", details["email"], "Email is not a secret and should be kept")
}

func TestAccountUseCase_ResetPassword(t *testing.T) {
	vendor := testVendor("vendor-1", "owner@jayatrans.co.id")
	existing := "auth-user-9"
	vendor.AuthUserID = &existing
	vendor.PasswordCiphertext = "stale"

	provider := newFakeProvider()
	producer := &fakeProducer{}
	activityRepo := &fakeActivityRepo{}
	box := newTestBox(t)

	uc := NewAccountUseCase(newFakeVendorRepo(vendor), activityRepo, provider, box, producer, logger.NoOpLogger(), 20, "credential.delivery")

	result, err := uc.ResetPassword(context.Background(), "vendor-1", "admin-1")
	require.NoError(t, err, "ResetPassword should succeed")

	assert.Len(t, result.Password, 20, "Password should use the configured length")
	require.Contains(t, provider.updated, "auth-user-9", "Provider identity should get the new password")
	assert.NotEqual(t, "stale", vendor.PasswordCiphertext, "Envelope should be replaced")

	plaintext, err := box.Decrypt(vendor.PasswordCiphertext)
	require.NoError(t, err, "New envelope should decrypt")
	assert.Equal(t, result.Password, plaintext, "Envelope should hold the new password")

	require.Len(t, activityRepo.entries, 1, "An audit entry should be written")
	assert.Equal(t, model.ActionPasswordReset, activityRepo.entries[0].Action, "Audit action should be PASSWORD_RESET")
}

func TestAccountUseCase_ResetPassword_NotProvisioned(t *testing.T) {
	uc := NewAccountUseCase(newFakeVendorRepo(testVendor("vendor-1", "owner@jayatrans.co.id")), &fakeActivityRepo{}, newFakeProvider(), newTestBox(t), &fakeProducer{}, logger.NoOpLogger(), 16, "")

	_, err := uc.ResetPassword(context.Background(), "vendor-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrAccountNotProvisioned, "Reset without an account should be rejected")
}

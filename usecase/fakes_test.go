package usecase

import (
	"context"
	"strings"
	"time"

	"rental-service/authprovider"
	"rental-service/domain"
	"rental-service/domain/model"

	"github.com/twmb/franz-go/pkg/kgo"
)

// fakeVendorRepo is an in-memory repository.Vendor with per-method hooks.
type fakeVendorRepo struct {
	vendors map[string]*model.Vendor

	createBatchFn   func(ctx context.Context, vendors []*model.Vendor) (int, error)
	updateAccountFn func(ctx context.Context, id, authUserID, ciphertext, status string) error
}

func newFakeVendorRepo(vendors ...*model.Vendor) *fakeVendorRepo {
	repo := &fakeVendorRepo{vendors: make(map[string]*model.Vendor)}
	for _, v := range vendors {
		repo.vendors[v.ID] = v
	}
	return repo
}

func (f *fakeVendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) CreateBatch(ctx context.Context, vendors []*model.Vendor) (int, error) {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, vendors)
	}
	for i, v := range vendors {
		if v.ID == "" {
			v.ID = "import-" + time.Now().Format("150405") + string(rune('a'+i))
		}
		f.vendors[v.ID] = v
	}
	return len(vendors), nil
}

func (f *fakeVendorRepo) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeVendorRepo) GetBySlug(ctx context.Context, slug string) (*model.Vendor, error) {
	for _, v := range f.vendors {
		if v.Slug == slug {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVendorRepo) FindByEmails(ctx context.Context, emails []string) ([]*model.Vendor, error) {
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[strings.ToLower(e)] = true
	}
	var found []*model.Vendor
	for _, v := range f.vendors {
		if v.Email != nil && want[strings.ToLower(*v.Email)] {
			found = append(found, v)
		}
	}
	return found, nil
}

func (f *fakeVendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) UpdateAccount(ctx context.Context, id, authUserID, ciphertext, status string) error {
	if f.updateAccountFn != nil {
		return f.updateAccountFn(ctx, id, authUserID, ciphertext, status)
	}
	v, ok := f.vendors[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.AuthUserID = &authUserID
	v.PasswordCiphertext = ciphertext
	v.RegistrationStatus = status
	now := time.Now()
	v.StatusChangedAt = &now
	return nil
}

func (f *fakeVendorRepo) UpdateCiphertext(ctx context.Context, id string, ciphertext string) error {
	v, ok := f.vendors[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.PasswordCiphertext = ciphertext
	return nil
}

func (f *fakeVendorRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	v, ok := f.vendors[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.RegistrationStatus = status
	return nil
}

func (f *fakeVendorRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.vendors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.vendors, id)
	return nil
}

func (f *fakeVendorRepo) List(ctx context.Context, offset, limit int) ([]*model.Vendor, int, error) {
	var all []*model.Vendor
	for _, v := range f.vendors {
		all = append(all, v)
	}
	return all, len(all), nil
}

// fakeActivityRepo records audit entries in memory.
type fakeActivityRepo struct {
	entries []*model.ActivityLog
}

func (f *fakeActivityRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, offset, limit int) ([]*model.ActivityLog, int, error) {
	return f.entries, len(f.entries), nil
}

// fakeProvider is a scriptable authprovider.Client that records calls.
type fakeProvider struct {
	existing map[string]*authprovider.User

	created  []authprovider.UserAttributes
	updated  map[string]authprovider.UserAttributes
	deleted  []string
	createID string

	findErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		existing: make(map[string]*authprovider.User),
		updated:  make(map[string]authprovider.UserAttributes),
		createID: "auth-user-1",
	}
}

func (f *fakeProvider) FindUserByEmail(ctx context.Context, email string) (*authprovider.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.existing[email], nil
}

func (f *fakeProvider) CreateUser(ctx context.Context, attrs authprovider.UserAttributes) (*authprovider.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, attrs)
	return &authprovider.User{ID: f.createID, Email: attrs.Email, Metadata: attrs.Metadata}, nil
}

func (f *fakeProvider) UpdateUser(ctx context.Context, id string, attrs authprovider.UserAttributes) (*authprovider.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated[id] = attrs
	return &authprovider.User{ID: id, Email: attrs.Email, Metadata: attrs.Metadata}, nil
}

func (f *fakeProvider) DeleteUser(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeProducer captures published events.
type fakeProducer struct {
	topics   []string
	payloads [][]byte
}

func (f *fakeProducer) Produce(ctx context.Context, topic string, value []byte) error {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, value)
	return nil
}

func (f *fakeProducer) ProduceAsync(ctx context.Context, topic string, value []byte) {
	_ = f.Produce(ctx, topic, value)
}

func (f *fakeProducer) Close() error { return nil }

func (f *fakeProducer) GetClient() *kgo.Client { return nil }


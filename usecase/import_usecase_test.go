package usecase

import (
	"context"
	"strings"
	"testing"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCityRepo serves a fixed city list.
type fakeCityRepo struct {
	cities []*model.City
}

func (f *fakeCityRepo) Create(ctx context.Context, city *model.City) error {
	f.cities = append(f.cities, city)
	return nil
}

func (f *fakeCityRepo) GetByID(ctx context.Context, id string) (*model.City, error) {
	for _, c := range f.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCityRepo) GetActive(ctx context.Context) ([]*model.City, error) {
	var active []*model.City
	for _, c := range f.cities {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func newImportTestUseCase(vendorRepo *fakeVendorRepo, activityRepo *fakeActivityRepo) ImportUseCase {
	cityRepo := &fakeCityRepo{cities: []*model.City{
		{ID: "city-jkt", Name: "Jakarta", Slug: "jakarta", IsActive: true},
		{ID: "city-bdg", Name: "Bandung", Slug: "bandung", IsActive: true},
		{ID: "city-old", Name: "Atlantis", Slug: "atlantis", IsActive: false},
	}}
	cityUC := NewCityUseCase(cityRepo, nil, logger.NoOpLogger())
	return NewImportUseCase(vendorRepo, activityRepo, cityUC, logger.NoOpLogger())
}

func TestImportUseCase_ImportFromCSV(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	activityRepo := &fakeActivityRepo{}
	uc := newImportTestUseCase(vendorRepo, activityRepo)

	csvText := strings.Join([]string{
		"business_name,email,phone,city",
		"Jaya Trans,owner@jayatrans.co.id,0811111,Jakarta",
		"Jaya Trans Duplikat,OWNER@jayatrans.co.id,0822222,Jakarta",
		"Budi Rental,not-an-email,0833333,Bandung",
	}, "\n")

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should not fail as a whole")

	assert.Equal(t, 3, result.Total, "Three data rows should be counted")
	assert.Equal(t, 1, result.Success, "Only the first row should be inserted")
	require.Len(t, result.Errors, 2, "Two rows should be rejected")

	assert.Equal(t, 3, result.Errors[0].Row, "The duplicate email is on row 3")
	assert.Contains(t, result.Errors[0].Error, "duplicate email", "Row 3 should be rejected as an in-file duplicate")
	assert.Equal(t, 4, result.Errors[1].Row, "The malformed email is on row 4")
	assert.Contains(t, result.Errors[1].Error, "invalid email", "Row 4 should be rejected for its email shape")

	require.Len(t, activityRepo.entries, 1, "An import audit entry should be written")
	assert.Equal(t, model.ActionVendorsImported, activityRepo.entries[0].Action, "Audit action should be VENDORS_IMPORTED")
}

func TestImportUseCase_CityMatchIsCaseInsensitive(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	csvText := "business_name,email,phone,city\n" +
		"Jaya Trans,owner@jayatrans.co.id,0811111,  jAkArTa  "

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 1, result.Success, "City should match regardless of case and padding")
	assert.Empty(t, result.Errors, "No rows should be rejected")

	for _, v := range vendorRepo.vendors {
		require.NotNil(t, v.CityID, "Imported vendor should be assigned a city")
		assert.Equal(t, "city-jkt", *v.CityID, "City should resolve to Jakarta")
	}
}

func TestImportUseCase_UnknownCityListsAvailable(t *testing.T) {
	uc := newImportTestUseCase(newFakeVendorRepo(), &fakeActivityRepo{})

	csvText := "business_name,email,phone,city\n" +
		"Jaya Trans,owner@jayatrans.co.id,0811111,Gotham"

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 0, result.Success, "Nothing should be inserted")
	require.Len(t, result.Errors, 1, "The unknown city row should be rejected")
	assert.Contains(t, result.Errors[0].Error, "Gotham", "Error should name the unknown city")
	assert.Contains(t, result.Errors[0].Error, "Jakarta", "Error should list the available cities")
	assert.NotContains(t, result.Errors[0].Error, "Atlantis", "Inactive cities are not available")
}

func TestImportUseCase_ExistingEmailRejected(t *testing.T) {
	email := "owner@jayatrans.co.id"
	vendorRepo := newFakeVendorRepo(&model.Vendor{
		ID:           "vendor-1",
		BusinessName: "Jaya Trans",
		Email:        &email,
		Slug:         "jaya-trans-ab12",
	})
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	csvText := strings.Join([]string{
		"business_name,email,phone,city",
		"Jaya Trans Baru,owner@jayatrans.co.id,0811111,Jakarta",
		"Budi Rental,budi@rental.id,0822222,Bandung",
	}, "\n")

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 2, result.Total, "Two data rows should be counted")
	assert.Equal(t, 1, result.Success, "Only the new email should be inserted")
	require.Len(t, result.Errors, 1, "The existing email should be rejected")
	assert.Equal(t, 2, result.Errors[0].Row, "The existing email is on row 2")
	assert.Contains(t, result.Errors[0].Error, "already exists", "Row 2 should be rejected as a duplicate")
}

func TestImportUseCase_MissingRequiredHeaderAborts(t *testing.T) {
	uc := newImportTestUseCase(newFakeVendorRepo(), &fakeActivityRepo{})

	csvText := "business_name,email,phone\n" +
		"Jaya Trans,owner@jayatrans.co.id,0811111"

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Header problems are data errors, not failures")
	assert.Equal(t, 0, result.Total, "No data rows should be processed")
	require.Len(t, result.Errors, 1, "A single header error should be reported")
	assert.Equal(t, 0, result.Errors[0].Row, "Header errors use row 0")
	assert.Contains(t, result.Errors[0].Error, "city", "The missing column should be named")
}

func TestImportUseCase_HeaderOnlyFileAborts(t *testing.T) {
	activityRepo := &fakeActivityRepo{}
	uc := newImportTestUseCase(newFakeVendorRepo(), activityRepo)

	result, err := uc.ImportFromCSV(context.Background(), "business_name,email,phone,city\n", "admin-1")
	require.NoError(t, err, "A file without data rows is a data error, not a failure")
	assert.Equal(t, 0, result.Total, "No data rows should be counted")
	assert.Equal(t, 0, result.Success, "Nothing should be inserted")
	require.Len(t, result.Errors, 1, "The missing data rows should be reported once")
	assert.Equal(t, 0, result.Errors[0].Row, "File-level errors use row 0")
	assert.Contains(t, result.Errors[0].Error, "no data rows", "The error should say the file has no data rows")
	assert.Empty(t, activityRepo.entries, "An aborted import should not be audited")
}

func TestImportUseCase_DuplicateHeaderNames(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	// Repeated header names collapse in the column lookup, but a row with
	// the file's real width must not be rejected for its column count.
	csvText := strings.Join([]string{
		"business_name,city,city",
		"Jaya Trans,ignored,Jakarta",
	}, "\n")

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 1, result.Success, "The full-width row should be inserted")
	assert.Empty(t, result.Errors, "No rows should be rejected")

	for _, v := range vendorRepo.vendors {
		require.NotNil(t, v.CityID, "Imported vendor should be assigned a city")
		assert.Equal(t, "city-jkt", *v.CityID, "The last duplicate column wins")
	}
}

func TestImportUseCase_EmptyFile(t *testing.T) {
	uc := newImportTestUseCase(newFakeVendorRepo(), &fakeActivityRepo{})

	result, err := uc.ImportFromCSV(context.Background(), "", "admin-1")
	require.NoError(t, err, "An empty file is a data error, not a failure")
	assert.Equal(t, 0, result.Total, "No rows should be counted")
	require.Len(t, result.Errors, 1, "The empty file should be reported")
	assert.Equal(t, 0, result.Errors[0].Row, "File-level errors use row 0")
}

func TestImportUseCase_QuotedFieldsSurviveParsing(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	csvText := "business_name,email,phone,city\r\n" +
		"\"Jaya, Trans \"\"Prima\"\"\",owner@jayatrans.co.id,0811111,Jakarta\r\n"

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	require.Equal(t, 1, result.Success, "The quoted row should be inserted")

	for _, v := range vendorRepo.vendors {
		assert.Equal(t, `Jaya, Trans "Prima"`, v.BusinessName, "Embedded commas and quotes should be preserved")
	}
}

func TestImportUseCase_RowsWithoutEmailAreNotDeduplicated(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	csvText := strings.Join([]string{
		"business_name,email,phone,city",
		"Warung Sewa,,0811111,Jakarta",
		"Sewa Motor,,0822222,Bandung",
	}, "\n")

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 2, result.Success, "Email-less rows never collide with each other")
	assert.Empty(t, result.Errors, "No rows should be rejected")
}

func TestImportUseCase_ReportsRowsLostToConcurrentImport(t *testing.T) {
	vendorRepo := newFakeVendorRepo()
	raceEmail := "owner@jayatrans.co.id"
	vendorRepo.createBatchFn = func(ctx context.Context, vendors []*model.Vendor) (int, error) {
		// Simulate a concurrent import winning the unique-index race on
		// the first row: the insert skips it and a different vendor now
		// owns the email.
		inserted := 0
		for _, v := range vendors {
			if v.Email != nil && strings.EqualFold(*v.Email, raceEmail) {
				continue
			}
			vendorRepo.vendors[v.ID] = v
			inserted++
		}
		vendorRepo.vendors["racer"] = &model.Vendor{
			ID:           "racer",
			BusinessName: "Pesaing",
			Email:        &raceEmail,
			Slug:         "pesaing-zz99",
		}
		return inserted, nil
	}
	uc := newImportTestUseCase(vendorRepo, &fakeActivityRepo{})

	csvText := strings.Join([]string{
		"business_name,email,phone,city",
		"Jaya Trans,owner@jayatrans.co.id,0811111,Jakarta",
		"Budi Rental,budi@rental.id,0822222,Bandung",
	}, "\n")

	result, err := uc.ImportFromCSV(context.Background(), csvText, "admin-1")
	require.NoError(t, err, "Import should succeed")
	assert.Equal(t, 1, result.Success, "Only the unraced row should count as inserted")
	require.Len(t, result.Errors, 1, "The raced row should be reported")
	assert.Equal(t, 2, result.Errors[0].Row, "The raced row is row 2")
	assert.Contains(t, result.Errors[0].Error, "already exists", "The raced row should read as a duplicate")
}

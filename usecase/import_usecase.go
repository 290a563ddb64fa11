package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/csvkit"
	"rental-service/pkg/logger"
	"rental-service/pkg/slug"
)

// emailPattern accepts local@domain.tld shapes without whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RowError describes why a single CSV row was not imported. Row numbers are
// 1-based counting the header, so the first data row is row 2.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
	// Data echoes the offending row for operator diagnosis.
	Data []string `json:"data,omitempty"`
}

// ImportResult summarizes a bulk import. Success counts inserted rows;
// Total counts data rows seen; every non-inserted row has an entry in Errors.
type ImportResult struct {
	Success int        `json:"success"`
	Total   int        `json:"total"`
	Errors  []RowError `json:"errors"`
}

// ImportUseCase defines the interface for CSV bulk vendor imports.
type ImportUseCase interface {
	// ImportFromCSV parses csvText, validates every row, skips duplicates
	// and inserts the remainder in one batch. Row problems are reported in
	// the result, not as an error; err is reserved for whole-batch failures.
	ImportFromCSV(ctx context.Context, csvText string, actorID string) (*ImportResult, error)
}

// importUseCase implements the ImportUseCase interface.
type importUseCase struct {
	vendorRepo   repository.Vendor
	activityRepo repository.ActivityLog
	cityUseCase  CityUseCase
	logger       logger.LoggerInterface
}

// NewImportUseCase creates a new instance of importUseCase.
func NewImportUseCase(
	vendorRepo repository.Vendor,
	activityRepo repository.ActivityLog,
	cityUseCase CityUseCase,
	appLogger logger.LoggerInterface,
) ImportUseCase {
	return &importUseCase{
		vendorRepo:   vendorRepo,
		activityRepo: activityRepo,
		cityUseCase:  cityUseCase,
		logger:       appLogger,
	}
}

// Required CSV headers after normalization.
const (
	headerBusinessName = "business_name"
	headerCity         = "city"
	headerEmail        = "email"
	headerPhone        = "phone"
	headerDescription  = "description"
)

// candidate is a parsed, validated row awaiting insertion.
type candidate struct {
	row    int
	data   []string
	vendor *model.Vendor
	email  string // lowercase, empty when the row has no email
}

// ImportFromCSV runs the full reconciliation pipeline: parse, validate each
// row, resolve cities against a one-shot index, drop duplicates within the
// file and against the database, then insert what remains in a single batch.
func (uc *importUseCase) ImportFromCSV(ctx context.Context, csvText string, actorID string) (*ImportResult, error) {
	result := &ImportResult{Errors: []RowError{}}

	records := csvkit.Parse(csvText)
	if len(records) == 0 {
		result.Errors = append(result.Errors, RowError{Row: 0, Error: "csv file is empty"})
		return result, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[csvkit.NormalizeHeader(name)] = i
	}
	for _, required := range []string{headerBusinessName, headerCity} {
		if _, ok := header[required]; !ok {
			result.Errors = append(result.Errors, RowError{
				Row:   0,
				Error: fmt.Sprintf("missing required column: %s", required),
			})
			return result, nil
		}
	}
	if len(records) < 2 {
		result.Errors = append(result.Errors, RowError{Row: 0, Error: "csv file has no data rows"})
		return result, nil
	}

	cityIndex, cityNames, err := uc.buildCityIndex(ctx)
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	columns := len(records[0])
	result.Total = len(rows)

	seenEmails := make(map[string]int, len(rows))
	candidates := make([]*candidate, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // 1-based, offset by the header row

		c, rowErr := uc.buildCandidate(rowNum, row, columns, header, cityIndex, cityNames)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		if c.email != "" {
			if first, dup := seenEmails[c.email]; dup {
				result.Errors = append(result.Errors, RowError{
					Row:   rowNum,
					Error: fmt.Sprintf("duplicate email within file (first used on row %d)", first),
					Data:  row,
				})
				continue
			}
			seenEmails[c.email] = rowNum
		}
		candidates = append(candidates, c)
	}

	candidates, dbDupErrors, err := uc.dropExisting(ctx, candidates)
	if err != nil {
		return nil, err
	}
	result.Errors = append(result.Errors, dbDupErrors...)

	if len(candidates) > 0 {
		vendors := make([]*model.Vendor, len(candidates))
		for i, c := range candidates {
			vendors[i] = c.vendor
		}

		inserted, err := uc.vendorRepo.CreateBatch(ctx, vendors)
		if err != nil {
			return nil, err
		}
		result.Success = inserted

		if inserted < len(candidates) {
			// A concurrent import slipped rows in between our duplicate
			// check and the insert. ON CONFLICT DO NOTHING skipped them
			// silently, so re-query to name the losers.
			raced, err := uc.reportRaceLosers(ctx, candidates)
			if err != nil {
				return nil, err
			}
			result.Errors = append(result.Errors, raced...)
		}
	}

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	uc.logger.InfoContext(ctx, "Vendor import finished",
		"total", result.Total, "success", result.Success, "errors", len(result.Errors))
	uc.auditImport(ctx, actorID, result)

	return result, nil
}

// buildCityIndex loads active cities once and indexes them by lowercased
// trimmed name. cityNames is the sorted display list used in error messages.
func (uc *importUseCase) buildCityIndex(ctx context.Context) (map[string]string, []string, error) {
	cities, err := uc.cityUseCase.GetActiveCities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cities for import: %w", err)
	}

	index := make(map[string]string, len(cities))
	names := make([]string, 0, len(cities))
	for _, city := range cities {
		index[strings.ToLower(strings.TrimSpace(city.Name))] = city.ID
		names = append(names, city.Name)
	}
	sort.Strings(names)
	return index, names, nil
}

// buildCandidate validates one data row and shapes it into a vendor model.
// columns is the raw header field count; the header map cannot be used for
// the width check because duplicate header names collapse in it.
func (uc *importUseCase) buildCandidate(rowNum int, row []string, columns int, header map[string]int, cityIndex map[string]string, cityNames []string) (*candidate, *RowError) {
	if len(row) != columns {
		return nil, &RowError{
			Row:   rowNum,
			Error: fmt.Sprintf("expected %d columns, got %d", columns, len(row)),
			Data:  row,
		}
	}

	field := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := field(headerBusinessName)
	if name == "" {
		return nil, &RowError{Row: rowNum, Error: "business_name is required", Data: row}
	}

	email := field(headerEmail)
	if email != "" && !emailPattern.MatchString(email) {
		return nil, &RowError{Row: rowNum, Error: fmt.Sprintf("invalid email: %s", email), Data: row}
	}

	cityName := field(headerCity)
	if cityName == "" {
		return nil, &RowError{Row: rowNum, Error: "city is required", Data: row}
	}
	cityID, ok := cityIndex[strings.ToLower(cityName)]
	if !ok {
		return nil, &RowError{
			Row:   rowNum,
			Error: fmt.Sprintf("unknown city %q (available: %s)", cityName, strings.Join(cityNames, ", ")),
			Data:  row,
		}
	}

	vendor := &model.Vendor{
		BusinessName:       name,
		Phone:              field(headerPhone),
		Slug:               slug.WithToken(name, 4),
		CityID:             &cityID,
		Description:        field(headerDescription),
		RegistrationStatus: model.StatusNotRegistered,
	}
	if email != "" {
		vendor.Email = &email
	}

	return &candidate{
		row:    rowNum,
		data:   row,
		vendor: vendor,
		email:  strings.ToLower(email),
	}, nil
}

// dropExisting removes candidates whose email already belongs to a vendor,
// using a single batched lookup.
func (uc *importUseCase) dropExisting(ctx context.Context, candidates []*candidate) ([]*candidate, []RowError, error) {
	emails := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.email != "" {
			emails = append(emails, c.email)
		}
	}
	if len(emails) == 0 {
		return candidates, nil, nil
	}

	existing, err := uc.vendorRepo.FindByEmails(ctx, emails)
	if err != nil {
		return nil, nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, v := range existing {
		if v.Email != nil {
			taken[strings.ToLower(*v.Email)] = true
		}
	}

	kept := candidates[:0]
	var rowErrs []RowError
	for _, c := range candidates {
		if c.email != "" && taken[c.email] {
			rowErrs = append(rowErrs, RowError{
				Row:   c.row,
				Error: fmt.Sprintf("vendor with email %s already exists", c.email),
				Data:  c.data,
			})
			continue
		}
		kept = append(kept, c)
	}
	return kept, rowErrs, nil
}

// reportRaceLosers re-queries the candidate emails after a partial batch
// insert and reports the rows that lost to a concurrent writer.
func (uc *importUseCase) reportRaceLosers(ctx context.Context, candidates []*candidate) ([]RowError, error) {
	emails := make([]string, 0, len(candidates))
	byEmail := make(map[string]*candidate, len(candidates))
	for _, c := range candidates {
		if c.email != "" {
			emails = append(emails, c.email)
			byEmail[c.email] = c
		}
	}
	if len(emails) == 0 {
		return nil, nil
	}

	existing, err := uc.vendorRepo.FindByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	var rowErrs []RowError
	for _, v := range existing {
		if v.Email == nil {
			continue
		}
		c, ok := byEmail[strings.ToLower(*v.Email)]
		if !ok || v.ID == c.vendor.ID {
			continue
		}
		rowErrs = append(rowErrs, RowError{
			Row:   c.row,
			Error: fmt.Sprintf("vendor with email %s already exists", c.email),
			Data:  c.data,
		})
	}
	return rowErrs, nil
}

// auditImport records the import outcome. Failures are logged, not returned.
func (uc *importUseCase) auditImport(ctx context.Context, actorID string, result *ImportResult) {
	payload, err := json.Marshal(model.SanitizeDetails(map[string]any{
		"total":   result.Total,
		"success": result.Success,
		"errors":  len(result.Errors),
	}))
	if err != nil {
		payload = []byte("{}")
	}

	entry := &model.ActivityLog{
		Action:     model.ActionVendorsImported,
		EntityType: "vendor",
		Details:    string(payload),
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to write import audit entry", "error", err)
	}
}

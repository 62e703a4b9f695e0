package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrApplicationNotFound covers both an absent id and a caller without
// ownership; the two are indistinguishable on purpose so existence is not
// leaked to non-owners.
var ErrApplicationNotFound = errors.New("application not found")

// ValidationError carries the complete list of submission preconditions
// that failed. Collection is batch, not fail-fast.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the following required fields are missing: %s", strings.Join(e.MissingFields, ", "))
}

const referencePrefix = "WSP"

// GenerateReferenceNumber assigns the next human-readable reference for the
// given year: WSP-YYYY-NNNN, monotonic per calendar year, zero padded.
func GenerateReferenceNumber(tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", referencePrefix, year)

	var last string
	err := tx.Model(&models.GrantApplication{}).
		Where("reference_number LIKE ?", prefix+"%").
		Order("reference_number DESC").
		Limit(1).
		Pluck("reference_number", &last).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up last reference number: %w", err)
	}

	return nextReferenceNumber(prefix, last), nil
}

// nextReferenceNumber increments the sequence of the highest reference seen
// for the prefix. An empty or unparseable last value starts the year at 0001.
func nextReferenceNumber(prefix, last string) string {
	seq := 1
	if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// CurrentFiscalYearCode returns the code of the fiscal year flagged as
// current, or nil when none is configured.
func CurrentFiscalYearCode(tx *gorm.DB) *string {
	var fy models.FiscalYear
	if err := tx.Where("is_current = ?", true).First(&fy).Error; err != nil {
		return nil
	}
	return &fy.Code
}

// CreateDraftApplication starts a new application in Draft status for the
// organization. The reference number is read and assigned inside the same
// transaction; when two creates race to the same sequence value, the unique
// index on reference_number rejects the loser.
func CreateDraftApplication(organizationID int) (*models.GrantApplication, error) {
	var application models.GrantApplication

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		reference, err := GenerateReferenceNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}

		now := time.Now()
		application = models.GrantApplication{
			ReferenceNumber: reference,
			OrganizationID:  organizationID,
			StatusCode:      models.StatusDraft,
			FiscalYearCode:  CurrentFiscalYearCode(tx),
			CreateAt:        &now,
			UpdateAt:        &now,
		}
		return tx.Create(&application).Error
	})
	if err != nil {
		return nil, err
	}

	return &application, nil
}

// ValidateForSubmission collects every missing required field for the
// application's type. Batch validation: the full list comes back, not just
// the first failure.
func ValidateForSubmission(app *models.GrantApplication, budgetLines []models.BudgetLineItem) []string {
	var missing []string

	hasText := func(s *string) bool { return s != nil && strings.TrimSpace(*s) != "" }

	if !hasText(app.ProgramName) {
		missing = append(missing, "program_name")
	}
	if !hasText(app.ServiceDescription) {
		missing = append(missing, "service_description")
	}

	switch {
	case app.ApplicationType != nil && *app.ApplicationType == models.TypePartABaseRenewal:
		if app.CurrentBedCount == nil {
			missing = append(missing, "current_bed_count")
		}
		if app.CurrentUnitCount == nil {
			missing = append(missing, "current_unit_count")
		}
	case app.ApplicationType != nil && *app.ApplicationType == models.TypePartBNewOrExpansion:
		if !hasText(app.ProposedLocation) {
			missing = append(missing, "proposed_location")
		}
		if !hasText(app.TargetPopulation) {
			missing = append(missing, "target_population")
		}
		if !hasText(app.CommunityNeedJustification) {
			missing = append(missing, "community_need_justification")
		}
		if !hasText(app.ExpansionType) {
			missing = append(missing, "expansion_type")
		}
		if app.ProposedBedCount == nil {
			missing = append(missing, "proposed_bed_count")
		}
	default:
		missing = append(missing, "application_type")
	}

	if len(budgetLines) == 0 {
		missing = append(missing, "budget_lines")
	}

	return missing
}

// SubmitApplication moves an application from Draft to Submitted on behalf
// of the applicant. The row is locked for the whole check-and-update so two
// concurrent submits cannot both succeed: the loser sees non-Draft under
// the lock and gets ErrApplicationNotFound.
//
// On success the status change, declaration flag, declaration and
// submission timestamps, and the audit row all commit as one unit.
func SubmitApplication(applicationID, organizationID, userID int) (*models.GrantApplication, error) {
	var application models.GrantApplication

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ? AND organization_id = ? AND status_code = ? AND delete_at IS NULL",
				applicationID, organizationID, models.StatusDraft).
			First(&application).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		var budgetLines []models.BudgetLineItem
		if err := tx.Where("application_id = ?", applicationID).Find(&budgetLines).Error; err != nil {
			return err
		}

		if missing := ValidateForSubmission(&application, budgetLines); len(missing) > 0 {
			return &ValidationError{MissingFields: missing}
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status_code":           models.StatusSubmitted,
			"declaration_accepted":  true,
			"declaration_timestamp": now,
			"submitted_at":          now,
			"update_at":             now,
		}
		if err := tx.Model(&models.GrantApplication{}).
			Where("application_id = ?", applicationID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := appendStatusHistory(tx, applicationID, models.StatusDraft, models.StatusSubmitted,
			userID, models.RoleApplicant, strPtr("Application submitted by applicant")); err != nil {
			return err
		}

		application.StatusCode = models.StatusSubmitted
		application.DeclarationAccepted = true
		application.DeclarationTimestamp = &now
		application.SubmittedAt = &now
		application.UpdateAt = &now
		application.BudgetLines = budgetLines
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &application, nil
}

// UpdateStatus applies a reviewer-driven transition to a live record. The
// transition table is consulted under the row lock so the check can never
// run against a stale status; the mutation and the audit row commit
// atomically. Returns the refreshed record with the owning organization
// preloaded; if the post-commit refresh read fails, the already-updated
// in-memory record is returned without the preload.
func UpdateStatus(applicationID int, requested models.ApplicationStatus, actorID int, note *string) (*models.GrantApplication, error) {
	var application models.GrantApplication

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ? AND delete_at IS NULL", applicationID).
			First(&application).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		current := application.StatusCode
		if err := ValidateTransition(current, requested); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.GrantApplication{}).
			Where("application_id = ?", applicationID).
			Updates(map[string]interface{}{
				"status_code": requested,
				"update_at":   now,
			}).Error; err != nil {
			return err
		}

		if err := appendStatusHistory(tx, applicationID, current, requested,
			actorID, models.RoleReviewer, note); err != nil {
			return err
		}

		application.StatusCode = requested
		application.UpdateAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	var refreshed models.GrantApplication
	if err := config.DB.Preload("Organization").
		First(&refreshed, application.ApplicationID).Error; err != nil {
		return &application, nil
	}
	return &refreshed, nil
}

// appendStatusHistory writes one immutable audit row. Must run inside the
// transaction that mutates the status.
func appendStatusHistory(tx *gorm.DB, applicationID int, from, to models.ApplicationStatus, actorID int, actorRole string, note *string) error {
	entry := models.StatusHistoryEntry{
		ApplicationID: applicationID,
		FromStatus:    &from,
		ToStatus:      to,
		ChangedByID:   actorID,
		ChangedByRole: actorRole,
		Note:          note,
		ChangedAt:     time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record status history: %w", err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

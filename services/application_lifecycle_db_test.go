package services

import (
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"

	"shelter-grants-api/models"
)

var (
	reviewLockQuery = regexp.MustCompile(
		`^SELECT \* FROM .grant_applications. WHERE application_id = \? AND delete_at IS NULL.* FOR UPDATE$`)
	submitLockQuery = regexp.MustCompile(
		`^SELECT \* FROM .grant_applications. WHERE application_id = \? AND organization_id = \? AND status_code = \? AND delete_at IS NULL.* FOR UPDATE$`)
	budgetLinesQuery = regexp.MustCompile(
		`^SELECT \* FROM .budget_line_items. WHERE application_id = \?$`)
	statusUpdateExec = regexp.MustCompile(
		`^UPDATE .grant_applications. SET .status_code.=\?,.update_at.=\? WHERE application_id = \?$`)
	submitUpdateExec = regexp.MustCompile(
		`^UPDATE .grant_applications. SET .declaration_accepted.=\?,.declaration_timestamp.=\?,.status_code.=\?,.submitted_at.=\?,.update_at.=\? WHERE application_id = \?$`)
	historyInsertExec = regexp.MustCompile(
		`^INSERT INTO .status_history. \(.*\) VALUES \(\?,\?,\?,\?,\?,\?,\?\)$`)
	refreshQuery = regexp.MustCompile(
		`^SELECT \* FROM .grant_applications. WHERE .grant_applications.\..application_id. = \?`)
	organizationQuery = regexp.MustCompile(
		`^SELECT \* FROM .organizations. WHERE .organizations.\..organization_id. (= \?|IN \(\?\))`)
)

var applicationColumns = []string{
	"application_id", "reference_number", "organization_id", "application_type",
	"status_code", "program_name", "service_description",
	"current_bed_count", "current_unit_count",
}

func applicationRow(status string) []driver.Value {
	return []driver.Value{
		int64(7), "WSP-2026-0007", int64(3), "PART_A_BASE_RENEWAL",
		status, "Harbour House", "Emergency shelter and crisis support",
		int64(20), int64(4),
	}
}

func TestUpdateStatusCommitsMutationWithSingleAuditRow(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("UnderReview")}},
		{kind: kindExec, pattern: statusUpdateExec, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: historyInsertExec, result: scriptedResult{lastInsertID: 12, rowsAffected: 1}},
		{kind: kindQuery, pattern: refreshQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("Approved")}},
		{kind: kindQuery, pattern: organizationQuery,
			columns: []string{"organization_id", "legal_name"},
			rows:    [][]driver.Value{{int64(3), "Hope Shelter Society"}}},
	}
	state := swapScriptedDB(t, steps)

	note := "meets all program criteria"
	application, err := UpdateStatus(7, models.StatusApproved, 42, &note)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if application.StatusCode != models.StatusApproved {
		t.Errorf("status = %q, want %q", application.StatusCode, models.StatusApproved)
	}
	if application.Organization == nil || application.Organization.LegalName != "Hope Shelter Society" {
		t.Errorf("organization not preloaded: %+v", application.Organization)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	wantEvents := []string{"begin", "query", "exec", "exec", "commit", "query", "query"}
	if !reflect.DeepEqual(state.events, wantEvents) {
		t.Errorf("events = %v, want %v", state.events, wantEvents)
	}

	update := steps[1]
	if update.got[0] != "Approved" {
		t.Errorf("status update set %v, want Approved", update.got[0])
	}
	if update.got[2] != int64(7) {
		t.Errorf("status update targeted application %v, want 7", update.got[2])
	}

	audit := steps[2]
	if audit.got[0] != int64(7) {
		t.Errorf("audit application_id = %v, want 7", audit.got[0])
	}
	if audit.got[1] != "UnderReview" || audit.got[2] != "Approved" {
		t.Errorf("audit from/to = %v/%v, want UnderReview/Approved", audit.got[1], audit.got[2])
	}
	if audit.got[3] != int64(42) {
		t.Errorf("audit actor = %v, want 42", audit.got[3])
	}
	if audit.got[4] != models.RoleReviewer {
		t.Errorf("audit role = %v, want %q", audit.got[4], models.RoleReviewer)
	}
	if audit.got[5] != note {
		t.Errorf("audit note = %v, want %q", audit.got[5], note)
	}
}

func TestUpdateStatusRejectedTransitionWritesNothing(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("UnderReview")}},
	}
	state := swapScriptedDB(t, steps)

	_, err := UpdateStatus(7, models.StatusSubmitted, 42, nil)
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("error = %v, want *TransitionError", err)
	}
	wantAllowed := []models.ApplicationStatus{
		models.StatusMoreInfoRequired, models.StatusApproved, models.StatusDeclined,
	}
	if !reflect.DeepEqual(transitionErr.Allowed, wantAllowed) {
		t.Errorf("allowed = %v, want %v", transitionErr.Allowed, wantAllowed)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	wantEvents := []string{"begin", "query", "rollback"}
	if !reflect.DeepEqual(state.events, wantEvents) {
		t.Errorf("events = %v, want %v", state.events, wantEvents)
	}
	if state.commits != 0 {
		t.Errorf("commits = %d, want 0", state.commits)
	}
}

func TestUpdateStatusReplayFailsAgainstMovedStatus(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("Submitted")}},
		{kind: kindExec, pattern: statusUpdateExec, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: historyInsertExec, result: scriptedResult{lastInsertID: 13, rowsAffected: 1}},
		{kind: kindQuery, pattern: refreshQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("UnderReview")}},
		{kind: kindQuery, pattern: organizationQuery,
			columns: []string{"organization_id", "legal_name"},
			rows:    [][]driver.Value{{int64(3), "Hope Shelter Society"}}},
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("UnderReview")}},
	}
	state := swapScriptedDB(t, steps)

	if _, err := UpdateStatus(7, models.StatusUnderReview, 42, nil); err != nil {
		t.Fatalf("first transition returned error: %v", err)
	}

	_, err := UpdateStatus(7, models.StatusUnderReview, 42, nil)
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("replayed transition error = %v, want *TransitionError", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	if state.commits != 1 {
		t.Errorf("commits = %d, want 1", state.commits)
	}
	if state.rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", state.rollbacks)
	}
}

func TestUpdateStatusReturnsRecordWhenRefreshFails(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("UnderReview")}},
		{kind: kindExec, pattern: statusUpdateExec, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: historyInsertExec, result: scriptedResult{lastInsertID: 14, rowsAffected: 1}},
		{kind: kindQuery, pattern: refreshQuery, err: errors.New("connection reset")},
	}
	state := swapScriptedDB(t, steps)

	application, err := UpdateStatus(7, models.StatusApproved, 42, nil)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if application.StatusCode != models.StatusApproved {
		t.Errorf("status = %q, want %q", application.StatusCode, models.StatusApproved)
	}
	if application.Organization != nil {
		t.Errorf("organization = %+v, want nil on failed refresh", application.Organization)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	if state.commits != 1 {
		t.Errorf("commits = %d, want 1", state.commits)
	}
}

func TestUpdateStatusUnknownApplication(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: reviewLockQuery, columns: applicationColumns},
	}
	state := swapScriptedDB(t, steps)

	_, err := UpdateStatus(99, models.StatusApproved, 42, nil)
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("error = %v, want ErrApplicationNotFound", err)
	}
	if state.commits != 0 {
		t.Errorf("commits = %d, want 0", state.commits)
	}
}

func TestSubmitApplicationCommitsStatusAndAuditTogether(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: submitLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{applicationRow("Draft")}},
		{kind: kindQuery, pattern: budgetLinesQuery,
			columns: []string{"line_item_id", "application_id", "category", "annual_amount"},
			rows:    [][]driver.Value{{int64(1), int64(7), "Salaries", float64(180000)}}},
		{kind: kindExec, pattern: submitUpdateExec, result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: historyInsertExec, result: scriptedResult{lastInsertID: 1, rowsAffected: 1}},
	}
	state := swapScriptedDB(t, steps)

	application, err := SubmitApplication(7, 3, 21)
	if err != nil {
		t.Fatalf("SubmitApplication returned error: %v", err)
	}
	if application.StatusCode != models.StatusSubmitted {
		t.Errorf("status = %q, want %q", application.StatusCode, models.StatusSubmitted)
	}
	if !application.DeclarationAccepted {
		t.Error("declaration_accepted not set")
	}
	if application.SubmittedAt == nil || application.DeclarationTimestamp == nil {
		t.Error("submission timestamps not set")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	wantEvents := []string{"begin", "query", "query", "exec", "exec", "commit"}
	if !reflect.DeepEqual(state.events, wantEvents) {
		t.Errorf("events = %v, want %v", state.events, wantEvents)
	}

	lock := steps[0]
	if lock.got[2] != "Draft" {
		t.Errorf("lock matched status %v, want Draft", lock.got[2])
	}

	update := steps[2]
	if update.got[0] != true {
		t.Errorf("declaration_accepted set to %v, want true", update.got[0])
	}
	if update.got[2] != "Submitted" {
		t.Errorf("status set to %v, want Submitted", update.got[2])
	}

	audit := steps[3]
	if audit.got[1] != "Draft" || audit.got[2] != "Submitted" {
		t.Errorf("audit from/to = %v/%v, want Draft/Submitted", audit.got[1], audit.got[2])
	}
	if audit.got[3] != int64(21) {
		t.Errorf("audit actor = %v, want 21", audit.got[3])
	}
	if audit.got[4] != models.RoleApplicant {
		t.Errorf("audit role = %v, want %q", audit.got[4], models.RoleApplicant)
	}
}

func TestSubmitApplicationIncompleteDraftWritesNothing(t *testing.T) {
	incomplete := []driver.Value{
		int64(7), "WSP-2026-0007", int64(3), "PART_A_BASE_RENEWAL",
		"Draft", "Harbour House", nil, nil, nil,
	}
	steps := []*dbStep{
		{kind: kindQuery, pattern: submitLockQuery, columns: applicationColumns,
			rows: [][]driver.Value{incomplete}},
		{kind: kindQuery, pattern: budgetLinesQuery,
			columns: []string{"line_item_id", "application_id", "category", "annual_amount"}},
	}
	state := swapScriptedDB(t, steps)

	_, err := SubmitApplication(7, 3, 21)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	want := []string{"service_description", "current_bed_count", "current_unit_count", "budget_lines"}
	if !reflect.DeepEqual(validationErr.MissingFields, want) {
		t.Errorf("missing fields = %v, want %v", validationErr.MissingFields, want)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("statement script not fully consumed: %v", err)
	}
	wantEvents := []string{"begin", "query", "query", "rollback"}
	if !reflect.DeepEqual(state.events, wantEvents) {
		t.Errorf("events = %v, want %v", state.events, wantEvents)
	}
	if state.commits != 0 {
		t.Errorf("commits = %d, want 0", state.commits)
	}
}

func TestSubmitApplicationNonDraftLooksAbsent(t *testing.T) {
	steps := []*dbStep{
		{kind: kindQuery, pattern: submitLockQuery, columns: applicationColumns},
	}
	state := swapScriptedDB(t, steps)

	_, err := SubmitApplication(7, 3, 21)
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("error = %v, want ErrApplicationNotFound", err)
	}
	wantEvents := []string{"begin", "query", "rollback"}
	if !reflect.DeepEqual(state.events, wantEvents) {
		t.Errorf("events = %v, want %v", state.events, wantEvents)
	}
}

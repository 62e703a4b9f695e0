package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"shelter-grants-api/models"
)

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from models.ApplicationStatus
		want []models.ApplicationStatus
	}{
		{models.StatusDraft, []models.ApplicationStatus{}},
		{models.StatusSubmitted, []models.ApplicationStatus{models.StatusUnderReview}},
		{models.StatusUnderReview, []models.ApplicationStatus{
			models.StatusMoreInfoRequired, models.StatusApproved, models.StatusDeclined,
		}},
		{models.StatusMoreInfoRequired, []models.ApplicationStatus{models.StatusUnderReview}},
		{models.StatusApproved, []models.ApplicationStatus{}},
		{models.StatusDeclined, []models.ApplicationStatus{}},
	}

	for _, tc := range cases {
		got := AllowedTransitions(tc.from)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("AllowedTransitions(%s) = %v, want %v", tc.from, got, tc.want)
		}
	}
}

func TestValidateTransitionAllPairs(t *testing.T) {
	legal := map[models.ApplicationStatus]map[models.ApplicationStatus]bool{
		models.StatusSubmitted:        {models.StatusUnderReview: true},
		models.StatusUnderReview:      {models.StatusMoreInfoRequired: true, models.StatusApproved: true, models.StatusDeclined: true},
		models.StatusMoreInfoRequired: {models.StatusUnderReview: true},
	}

	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			err := ValidateTransition(from, to)
			if legal[from][to] {
				if err != nil {
					t.Errorf("ValidateTransition(%s, %s) = %v, want nil", from, to, err)
				}
				continue
			}
			if err == nil {
				t.Errorf("ValidateTransition(%s, %s) = nil, want error", from, to)
			}
		}
	}
}

func TestValidateTransitionSelfLoopRejected(t *testing.T) {
	for _, status := range models.AllStatuses {
		if err := ValidateTransition(status, status); err == nil {
			t.Errorf("ValidateTransition(%s, %s) = nil, want error", status, status)
		}
	}
}

func TestValidateTransitionMoreInfoCannotDecideDirectly(t *testing.T) {
	for _, to := range []models.ApplicationStatus{models.StatusApproved, models.StatusDeclined} {
		err := ValidateTransition(models.StatusMoreInfoRequired, to)

		var transitionErr *TransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("ValidateTransition(MoreInfoRequired, %s) = %v, want *TransitionError", to, err)
		}

		want := []models.ApplicationStatus{models.StatusUnderReview}
		if !reflect.DeepEqual(transitionErr.Allowed, want) {
			t.Errorf("Allowed = %v, want %v", transitionErr.Allowed, want)
		}
	}
}

func TestValidateTransitionReportsValidAlternatives(t *testing.T) {
	err := ValidateTransition(models.StatusUnderReview, models.StatusSubmitted)

	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}

	want := []models.ApplicationStatus{models.StatusMoreInfoRequired, models.StatusApproved, models.StatusDeclined}
	if !reflect.DeepEqual(transitionErr.Allowed, want) {
		t.Errorf("Allowed = %v, want %v", transitionErr.Allowed, want)
	}
	for _, name := range []string{"MoreInfoRequired", "Approved", "Declined"} {
		if !strings.Contains(transitionErr.Error(), name) {
			t.Errorf("error message %q missing %s", transitionErr.Error(), name)
		}
	}
}

func TestValidateTransitionTerminalMessage(t *testing.T) {
	err := ValidateTransition(models.StatusApproved, models.StatusUnderReview)
	if err == nil {
		t.Fatal("expected error for transition out of Approved")
	}
	if !strings.Contains(err.Error(), "terminal") {
		t.Errorf("error message %q should mention the terminal state", err.Error())
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	if err := ValidateTransition("Pending", models.StatusApproved); err == nil {
		t.Error("expected error for unknown current status")
	}
	if err := ValidateTransition(models.StatusUnderReview, "Archived"); err == nil {
		t.Error("expected error for unknown requested status")
	}
}

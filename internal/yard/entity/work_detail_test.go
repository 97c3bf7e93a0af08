package entity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		close *time.Time
		want  WorkStatus
	}{
		{"no dates", nil, nil, WorkStatusNotReady},
		{"started only", date(2025, 6, 1), nil, WorkStatusInProgress},
		{"started and closed", date(2025, 6, 1), date(2025, 6, 10), WorkStatusCompleted},
		{"same day start and close", date(2025, 6, 1), date(2025, 6, 1), WorkStatusCompleted},
		// Close date wins even when start is missing; the status never
		// depends on which field was filled first.
		{"closed without start", nil, date(2025, 6, 10), WorkStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &WorkDetail{ActualStartDate: tt.start, ActualCloseDate: tt.close}
			if got := d.DeriveStatus(); got != tt.want {
				t.Errorf("DeriveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrentProgress(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got := CurrentProgress(nil)
		if got.Value != 0 || got.AsOf != nil || got.Count != 0 {
			t.Errorf("CurrentProgress(nil) = %+v, want zero summary", got)
		}
	})

	t.Run("latest date wins regardless of order", func(t *testing.T) {
		reports := []ProgressReport{
			{ID: "b", Percentage: 80, ReportDate: *date(2025, 6, 10)},
			{ID: "a", Percentage: 30, ReportDate: *date(2025, 6, 1)},
			{ID: "c", Percentage: 50, ReportDate: *date(2025, 6, 5)},
		}
		got := CurrentProgress(reports)
		if got.Value != 80 {
			t.Errorf("Value = %v, want 80", got.Value)
		}
		if got.Count != 3 {
			t.Errorf("Count = %v, want 3", got.Count)
		}
		if got.AsOf == nil || !got.AsOf.Equal(*date(2025, 6, 10)) {
			t.Errorf("AsOf = %v, want 2025-06-10", got.AsOf)
		}
	})

	t.Run("tie on date resolved by highest id", func(t *testing.T) {
		reports := []ProgressReport{
			{ID: "0002", Percentage: 70, ReportDate: *date(2025, 6, 10)},
			{ID: "0001", Percentage: 60, ReportDate: *date(2025, 6, 10)},
		}
		if got := CurrentProgress(reports).Value; got != 70 {
			t.Errorf("Value = %v, want 70", got)
		}

		// Reversed slice order yields the same winner.
		reversed := []ProgressReport{reports[1], reports[0]}
		if got := CurrentProgress(reversed).Value; got != 70 {
			t.Errorf("Value (reversed) = %v, want 70", got)
		}
	})

	t.Run("progress can decrease", func(t *testing.T) {
		reports := []ProgressReport{
			{ID: "a", Percentage: 90, ReportDate: *date(2025, 6, 1)},
			{ID: "b", Percentage: 40, ReportDate: *date(2025, 6, 2)},
		}
		if got := CurrentProgress(reports).Value; got != 40 {
			t.Errorf("Value = %v, want 40", got)
		}
	})
}

func TestFieldAccess(t *testing.T) {
	tests := []struct {
		role  Role
		field string
		want  Access
	}{
		{RolePPIC, FieldDescription, AccessWrite},
		{RolePPIC, FieldActualStartDate, AccessWrite}, // legacy execution access
		{RoleProduction, FieldActualStartDate, AccessWrite},
		{RoleProduction, FieldDescription, AccessReadOnly},
		{RoleProduction, FieldQuantity, AccessReadOnly},
		{RoleMaster, FieldDescription, AccessWrite},
		{RoleMaster, FieldActualCloseDate, AccessWrite},
		{RoleNone, FieldDescription, AccessHidden},
		{RolePPIC, "no_such_field", AccessHidden},
	}

	for _, tt := range tests {
		if got := FieldAccess(tt.role, tt.field); got != tt.want {
			t.Errorf("FieldAccess(%q, %q) = %v, want %v", tt.role, tt.field, got, tt.want)
		}
	}
}

func TestRoleGates(t *testing.T) {
	if !CanCreateWorkDetail(RolePPIC) || !CanCreateWorkDetail(RoleMaster) {
		t.Error("PPIC and MASTER must be able to create work details")
	}
	if CanCreateWorkDetail(RoleProduction) || CanCreateWorkDetail(RoleNone) {
		t.Error("PRODUCTION and unknown roles must not create work details")
	}
	if WritesPlanning(RoleProduction) {
		t.Error("PRODUCTION must not write planning fields")
	}
	if !WritesExecution(RoleProduction) {
		t.Error("PRODUCTION must write execution fields")
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole("PPIC") != RolePPIC {
		t.Error("PPIC should parse")
	}
	if ParseRole("viewer") != RoleNone {
		t.Error("unknown role should map to RoleNone")
	}
	if ParseRole("") != RoleNone {
		t.Error("empty role should map to RoleNone")
	}
}

package domain

import "testing"

func TestClientStatus_Progress(t *testing.T) {
	tests := []struct {
		status ClientStatus
		want   int
	}{
		{StatusIntake, 20},
		{StatusPreparation, 40},
		{StatusReview, 60},
		{StatusFiled, 80},
		{StatusInvoiced, 90},
		{StatusCompleted, 100},
		{ClientStatus("BOGUS"), 0},
	}
	for _, tt := range tests {
		if got := tt.status.Progress(); got != tt.want {
			t.Errorf("Progress(%s) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestClientStatus_Valid(t *testing.T) {
	for _, s := range []ClientStatus{StatusIntake, StatusPreparation, StatusReview, StatusFiled, StatusInvoiced, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []ClientStatus{"", "intake", "DONE", "ARCHIVED"} {
		if s.Valid() {
			t.Errorf("%s should be invalid", s)
		}
	}
}

func TestEntityType_Valid(t *testing.T) {
	for _, e := range []EntityType{EntityIndividual, EntityLLC, EntitySCorp, EntityCCorp, EntityPartnership, EntityTrust, EntityEstate, EntityOther} {
		if !e.Valid() {
			t.Errorf("%s should be valid", e)
		}
	}
	if EntityType("SOLE_PROP").Valid() {
		t.Error("unknown entity type should be invalid")
	}
	if EntityType("").Valid() {
		t.Error("empty entity type should be invalid")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "tax_year", Reason: "must be between 2016 and 2027"}
	want := "tax_year: must be between 2016 and 2027"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

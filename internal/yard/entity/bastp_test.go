package entity

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestEvaluateTransitionDraft(t *testing.T) {
	t.Run("draft with no linked details never advances", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusDraft}
		next, fired := EvaluateTransition(b, TransitionContext{})
		if fired || next != BASTPStatusDraft {
			t.Errorf("got (%v, %v), want (DRAFT, false)", next, fired)
		}

		// Later-stage conditions already holding changes nothing: a signed
		// document and an invoice cannot move a draft with zero links.
		b = &BASTP{Status: BASTPStatusDraft, SignedDocumentPath: strPtr("bastp/doc.pdf")}
		next, fired = EvaluateTransition(b, TransitionContext{HasInvoice: true})
		if fired || next != BASTPStatusDraft {
			t.Errorf("got (%v, %v), want (DRAFT, false)", next, fired)
		}
	})

	t.Run("draft with unverified detail stays", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusDraft}
		tc := TransitionContext{
			LinkedWorkDetailIDs:   []string{"wd1", "wd2"},
			VerifiedWorkDetailIDs: map[string]bool{"wd1": true},
		}
		if _, fired := EvaluateTransition(b, tc); fired {
			t.Error("partial verification must not advance")
		}
	})

	t.Run("draft with all verified advances to verified", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusDraft}
		tc := TransitionContext{
			LinkedWorkDetailIDs:   []string{"wd1", "wd2"},
			VerifiedWorkDetailIDs: map[string]bool{"wd1": true, "wd2": true},
		}
		next, fired := EvaluateTransition(b, tc)
		if !fired || next != BASTPStatusVerified {
			t.Errorf("got (%v, %v), want (VERIFIED, true)", next, fired)
		}
	})
}

func TestEvaluateTransitionVerified(t *testing.T) {
	t.Run("no signed document stays", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusVerified}
		if _, fired := EvaluateTransition(b, TransitionContext{}); fired {
			t.Error("missing signed document must not advance")
		}
	})

	t.Run("empty path counts as missing", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusVerified, SignedDocumentPath: strPtr("")}
		if _, fired := EvaluateTransition(b, TransitionContext{}); fired {
			t.Error("empty path must not advance")
		}
	})

	t.Run("signed document advances to ready", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusVerified, SignedDocumentPath: strPtr("bastp/2025/06/01/abc.pdf")}
		next, fired := EvaluateTransition(b, TransitionContext{})
		if !fired || next != BASTPStatusReadyForInvoice {
			t.Errorf("got (%v, %v), want (READY_FOR_INVOICE, true)", next, fired)
		}
	})
}

func TestEvaluateTransitionReadyAndTerminal(t *testing.T) {
	t.Run("ready without invoice stays", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusReadyForInvoice}
		if _, fired := EvaluateTransition(b, TransitionContext{HasInvoice: false}); fired {
			t.Error("no invoice must not advance")
		}
	})

	t.Run("ready with invoice advances to invoiced", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusReadyForInvoice}
		next, fired := EvaluateTransition(b, TransitionContext{HasInvoice: true})
		if !fired || next != BASTPStatusInvoiced {
			t.Errorf("got (%v, %v), want (INVOICED, true)", next, fired)
		}
	})

	t.Run("invoiced is terminal", func(t *testing.T) {
		b := &BASTP{Status: BASTPStatusInvoiced}
		next, fired := EvaluateTransition(b, TransitionContext{HasInvoice: true})
		if fired || next != BASTPStatusInvoiced {
			t.Errorf("got (%v, %v), want (INVOICED, false)", next, fired)
		}
	})
}

// One pass moves at most one step even when every condition already holds.
func TestEvaluateTransitionSingleStep(t *testing.T) {
	b := &BASTP{Status: BASTPStatusDraft, SignedDocumentPath: strPtr("bastp/doc.pdf")}
	tc := TransitionContext{
		LinkedWorkDetailIDs:   []string{"wd1"},
		VerifiedWorkDetailIDs: map[string]bool{"wd1": true},
		HasInvoice:            true,
	}

	next, fired := EvaluateTransition(b, tc)
	if !fired || next != BASTPStatusVerified {
		t.Fatalf("first pass: got (%v, %v), want (VERIFIED, true)", next, fired)
	}

	b.Status = next
	next, fired = EvaluateTransition(b, tc)
	if !fired || next != BASTPStatusReadyForInvoice {
		t.Fatalf("second pass: got (%v, %v), want (READY_FOR_INVOICE, true)", next, fired)
	}

	b.Status = next
	next, fired = EvaluateTransition(b, tc)
	if !fired || next != BASTPStatusInvoiced {
		t.Fatalf("third pass: got (%v, %v), want (INVOICED, true)", next, fired)
	}

	b.Status = next
	if _, fired = EvaluateTransition(b, tc); fired {
		t.Fatal("fourth pass must be a no-op")
	}
}

func TestCalcTotalDays(t *testing.T) {
	tests := []struct {
		name  string
		start *string
		close *string
		want  int
	}{
		{"both missing", nil, nil, 0},
		{"close missing", strPtr("2025-06-01"), nil, 0},
		{"same day is one", strPtr("2025-06-01"), strPtr("2025-06-01"), 1},
		{"inclusive span", strPtr("2025-06-01"), strPtr("2025-06-03"), 3},
		{"close before start clamps to zero", strPtr("2025-06-05"), strPtr("2025-06-01"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GeneralService{}
			if tt.start != nil {
				g.StartDate = mustDate(t, *tt.start)
			}
			if tt.close != nil {
				g.CloseDate = mustDate(t, *tt.close)
			}
			if got := g.CalcTotalDays(); got != tt.want {
				t.Errorf("CalcTotalDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return &v
}

package editor

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name      string
		displayed string
		content   Content
		want      Status
	}{
		{"all equal", "a", Content{Live: "a", Saved: "a"}, StatusSaved},
		{"live ahead of saved", "b", Content{Live: "b", Saved: "a"}, StatusLive},
		{"edited", "c", Content{Live: "b", Saved: "a"}, StatusDirty},
		{"edited back to saved only", "a", Content{Live: "b", Saved: "a"}, StatusDirty},
	}
	for _, tc := range cases {
		if got := Derive(tc.displayed, tc.content); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestErrorStateSurvivesExactlyOneCheck(t *testing.T) {
	c := Content{Live: "a", Saved: "a"}
	s := Failed("boom")

	s = s.Next("a", c)
	if s.Status != StatusError || s.Message != "boom" {
		t.Fatalf("expected error to persist through first check, got %s %q", s.Status, s.Message)
	}
	s = s.Next("a", c)
	if s.Status != StatusSaved {
		t.Fatalf("expected re-derivation on second check, got %s", s.Status)
	}
	if s.Message != "live, saved on disk" {
		t.Fatalf("unexpected message %q", s.Message)
	}
}

func TestParseSlot(t *testing.T) {
	if slot, ok := ParseSlot("saved"); !ok || slot != SlotSaved {
		t.Fatalf("expected saved slot")
	}
	if _, ok := ParseSlot("elsewhere"); ok {
		t.Fatalf("expected unknown slot to be rejected")
	}
}

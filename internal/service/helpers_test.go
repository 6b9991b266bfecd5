package service

import (
	"strings"
	"testing"
)

func TestTicketRef(t *testing.T) {
	if got := FormatTicketRef(1); got != "TKT-001" {
		t.Errorf("expected TKT-001, got %s", got)
	}
	if got := FormatTicketRef(1234); got != "TKT-1234" {
		t.Errorf("expected TKT-1234, got %s", got)
	}

	valid := map[string]uint{
		"TKT-001": 1,
		"tkt-42":  42,
		"7":       7,
		" 12 ":    12,
	}
	for in, want := range valid {
		got, err := ParseTicketRef(in)
		if err != nil {
			t.Errorf("ParseTicketRef(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTicketRef(%q) = %d, want %d", in, got, want)
		}
	}

	for _, in := range []string{"", "TKT-", "TKT-abc", "0", "-3", "TKT-0"} {
		if _, err := ParseTicketRef(in); err != ErrInvalidTicketRef {
			t.Errorf("ParseTicketRef(%q) expected ErrInvalidTicketRef, got %v", in, err)
		}
	}
}

func TestNormalizeTagAndLab(t *testing.T) {
	if got := NormalizeTag("  lab-b-07 "); got != "LAB-B-07" {
		t.Errorf("unexpected normalised tag %q", got)
	}

	cases := map[string]string{
		"LAB-A-01":     "Lab A",
		"LAB-D-12":     "Lab D",
		"LIB-PC-04":    "Library",
		"STAFF-ROOM-A": "Staff",
		"PC-99":        "Unknown",
		"LAB-":         "Unknown",
	}
	for tag, want := range cases {
		if got := LabFromTag(tag); got != want {
			t.Errorf("LabFromTag(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	if got := sanitizeText(`<script>alert(1)</script>Screen <b>dead</b>`); got != "Screen dead" {
		t.Errorf("unexpected sanitised text %q", got)
	}
	if got := sanitizeText("  <br/>  "); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestSanitizeText_KeepsPunctuation(t *testing.T) {
	in := "Can't reach \"gitlab\" & DNS fails"
	if got := sanitizeText(in); got != in {
		t.Errorf("expected %q, got %q", in, got)
	}
}

func TestSanitizeText_EncodedMarkup(t *testing.T) {
	cases := map[string]string{
		"&lt;script&gt;alert(1)&lt;/script&gt; broken": "broken",
		"&lt;b&gt;fan&lt;/b&gt; noisy":                  "fan noisy",
		"&amp;lt;i&amp;gt;double&amp;lt;/i&amp;gt;":    "double",
	}
	for in, want := range cases {
		got := sanitizeText(in)
		if got != want {
			t.Errorf("sanitizeText(%q) = %q, want %q", in, got, want)
		}
		if strings.ContainsAny(got, "<>") {
			t.Errorf("sanitizeText(%q) kept markup: %q", in, got)
		}
	}
}

func TestSanitizeText_LiteralComparison(t *testing.T) {
	if got := sanitizeText("temp 3 < 5 on LAB-A-01"); got != "temp 3 < 5 on LAB-A-01" {
		t.Errorf("unexpected sanitised text %q", got)
	}
}

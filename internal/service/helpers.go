package service

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/anastheace/faultandtms/internal/dto"
)

// Caller is the authenticated identity a request runs as.
type Caller struct {
	UserID uint
	Role   string
}

// ── ticket references ──

const ticketRefPrefix = "TKT-"

var ErrInvalidTicketRef = errors.New("invalid ticket reference")

// FormatTicketRef renders a ticket id as TKT-001.
func FormatTicketRef(id uint) string {
	return fmt.Sprintf("%s%03d", ticketRefPrefix, id)
}

// ParseTicketRef accepts "TKT-001", "tkt-1" or a bare "1".
func ParseTicketRef(ref string) (uint, error) {
	s := strings.TrimSpace(ref)
	if len(s) >= len(ticketRefPrefix) && strings.EqualFold(s[:len(ticketRefPrefix)], ticketRefPrefix) {
		s = s[len(ticketRefPrefix):]
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidTicketRef
	}
	return uint(n), nil
}

// ── workstation tags ──

// NormalizeTag trims and upper-cases a workstation tag.
func NormalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}

// LabFromTag derives the lab name from a normalised tag:
// LAB-B-07 is in "Lab B", LIB-PC-01 in "Library", STAFF-ROOM-A in "Staff".
func LabFromTag(tag string) string {
	parts := strings.Split(tag, "-")
	switch {
	case len(parts) >= 3 && parts[0] == "LAB" && parts[1] != "":
		return "Lab " + parts[1]
	case parts[0] == "LIB":
		return "Library"
	case parts[0] == "STAFF":
		return "Staff"
	}
	return "Unknown"
}

// ── text ──

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the strip/unescape loop for nested encodings.
const maxSanitizePasses = 8

// sanitizeText strips every HTML tag and surrounding whitespace. The policy
// entity-encodes what it keeps, so the result is unescaped back to plain text
// and stripped again until nothing changes; encoded markup such as
// "&lt;b&gt;" must not come back out as a tag.
func sanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still unwrapping after the last pass: drop angle brackets outright
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(s))
}

// ── time ──

func formatTime(t time.Time) string {
	return t.UTC().Format(dto.TimeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

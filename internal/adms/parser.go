package adms

import (
	"strings"

	"github.com/Surachart01/KMS/internal/domain"
)

// TableAttlog is the table query value the terminal uses for attendance pushes.
const TableAttlog = "ATTLOG"

// ATTLOG columns, tab separated.
const (
	fieldSubject = iota
	fieldTimestamp
	fieldStatus
	fieldVerifyType

	fullLineFields
)

// ParseAttlog splits an ATTLOG body into identity events. Blank lines are
// ignored; lines that carry no usable subject are counted in skipped.
func ParseAttlog(raw string) (events []domain.IdentityEvent, skipped int) {
	raw = strings.ToValidUTF8(raw, "")
	for _, line := range splitLines(strings.TrimSpace(raw)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		evt, ok := parseAttlogLine(line)
		if !ok {
			skipped++
			continue
		}
		events = append(events, evt)
	}
	return events, skipped
}

func parseAttlogLine(line string) (domain.IdentityEvent, bool) {
	parts := strings.Split(strings.TrimSpace(line), "\t")
	subject := strings.TrimSpace(parts[fieldSubject])

	if len(parts) >= fullLineFields {
		if subject == "" {
			return domain.IdentityEvent{}, false
		}
		return domain.IdentityEvent{
			SubjectID:  subject,
			Timestamp:  strings.TrimSpace(parts[fieldTimestamp]),
			Status:     strings.TrimSpace(parts[fieldStatus]),
			VerifyType: strings.TrimSpace(parts[fieldVerifyType]),
		}, true
	}

	// Short lines are only trusted when the first field looks like a user PIN.
	if subject == "" || !isDigits(subject) {
		return domain.IdentityEvent{}, false
	}
	return domain.IdentityEvent{SubjectID: subject}, true
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

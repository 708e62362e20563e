package adms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surachart01/KMS/internal/domain"
)

func TestParseAttlog(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantEvents  []domain.IdentityEvent
		wantSkipped int
	}{
		{
			name: "full face-scan line",
			body: "12345\t2024-01-01 10:00:00\t1\t15",
			wantEvents: []domain.IdentityEvent{{
				SubjectID:  "12345",
				Timestamp:  "2024-01-01 10:00:00",
				Status:     "1",
				VerifyType: "15",
			}},
		},
		{
			name: "blank lines yield nothing",
			body: "12345\t2024-01-01 10:00:00\t1\t15\n\n   \n",
			wantEvents: []domain.IdentityEvent{{
				SubjectID:  "12345",
				Timestamp:  "2024-01-01 10:00:00",
				Status:     "1",
				VerifyType: "15",
			}},
		},
		{
			name: "extra trailing columns are ignored",
			body: "777\t2024-01-01 10:00:00\t0\t1\t0\t0\t0",
			wantEvents: []domain.IdentityEvent{{
				SubjectID:  "777",
				Timestamp:  "2024-01-01 10:00:00",
				Status:     "0",
				VerifyType: "1",
			}},
		},
		{
			name:       "short numeric line is a minimal event",
			body:       "67130500426",
			wantEvents: []domain.IdentityEvent{{SubjectID: "67130500426"}},
		},
		{
			name:       "short numeric line with timestamp only",
			body:       "42\t2024-01-01 10:00:00",
			wantEvents: []domain.IdentityEvent{{SubjectID: "42"}},
		},
		{
			name:        "short non-numeric line is skipped",
			body:        "OPLOG 4\t2024-01-01",
			wantSkipped: 1,
		},
		{
			name:        "whitespace-only columns are blank",
			body:        "\t\t\t",
			wantSkipped: 0,
		},
		{
			name: "crlf separated batch",
			body: "1\t2024-01-01 10:00:00\t0\t15\r\n2\t2024-01-01 10:00:05\t0\t1\r\n",
			wantEvents: []domain.IdentityEvent{
				{SubjectID: "1", Timestamp: "2024-01-01 10:00:00", Status: "0", VerifyType: "15"},
				{SubjectID: "2", Timestamp: "2024-01-01 10:00:05", Status: "0", VerifyType: "1"},
			},
		},
		{
			name: "empty body",
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, skipped := ParseAttlog(tt.body)
			assert.Equal(t, tt.wantEvents, events)
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestParseAttlog_FaceVerifyType(t *testing.T) {
	events, _ := ParseAttlog("12345\t2024-01-01 10:00:00\t1\t15")
	require.Len(t, events, 1)
	assert.True(t, events[0].IsFaceScan())
}

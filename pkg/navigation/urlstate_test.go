package navigation

import (
	"strings"
	"testing"
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestURLStateRoundTrip(t *testing.T) {
	record := &entity.NavigationRecord{
		Id:         uuid.New(),
		SessionId:  uuid.New(),
		Step:       entity.StepFeatures,
		Substep:    "skills-chart",
		Transition: entity.TransitionPush,
		Timestamp:  time.Now(),
	}

	parsed, err := ParseState(EncodeState(record))
	assert.NoError(t, err)
	assert.Equal(t, record.SessionId, parsed.SessionId)
	assert.Equal(t, record.Step, parsed.Step)
	assert.Equal(t, record.Substep, parsed.Substep)
	// Timestamp regenerates on parse; it is not part of the round-trip.
	assert.False(t, parsed.Timestamp.IsZero())
}

func TestParseStateRejectsBadInput(t *testing.T) {
	valid := uuid.New().String()

	tests := []struct {
		name     string
		rawQuery string
		wantCode apperror.Code
	}{
		{
			name:     "garbage session id",
			rawQuery: "session=not-a-uuid&step=upload",
			wantCode: apperror.CodeInvalidSessionId,
		},
		{
			name:     "missing session id",
			rawQuery: "step=upload",
			wantCode: apperror.CodeInvalidSessionId,
		},
		{
			name:     "unknown step",
			rawQuery: "session=" + valid + "&step=admin",
			wantCode: apperror.CodeValidation,
		},
		{
			name:     "script injection in substep",
			rawQuery: "session=" + valid + "&step=features&substep=%3Cscript%3Ealert(1)%3C/script%3E",
			wantCode: apperror.CodeValidation,
		},
		{
			name:     "oversized substep",
			rawQuery: "session=" + valid + "&step=features&substep=" + strings.Repeat("a", 80),
			wantCode: apperror.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseState(tt.rawQuery)
			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
		})
	}
}

func TestParseStateAllowsEmptySubstep(t *testing.T) {
	record, err := ParseState("session=" + uuid.New().String() + "&step=preview")
	assert.NoError(t, err)
	assert.Equal(t, entity.StepPreview, record.Step)
	assert.Empty(t, record.Substep)
}

package navigation

import (
	"net/url"
	"regexp"
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// substepPattern restricts substeps to plain slugs. URL parameters are
// attacker-controlled and must never reach rendered output unvalidated.
var substepPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// EncodeState serializes a navigation record into URL query parameters
// (session, step, substep).
func EncodeState(record *entity.NavigationRecord) string {
	values := url.Values{}
	values.Set("session", record.SessionId.String())
	values.Set("step", string(record.Step))
	if record.Substep != "" {
		values.Set("substep", record.Substep)
	}
	return values.Encode()
}

// ParseState validates and decodes navigation state from a raw query string.
// The result is trusted only for choosing which session/step to render; the
// timestamp regenerates on parse.
func ParseState(rawQuery string) (*entity.NavigationRecord, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, apperror.Validation("malformed query string")
	}

	sessionId, err := uuid.Parse(values.Get("session"))
	if err != nil {
		return nil, apperror.InvalidSessionId("session parameter is not a valid id")
	}

	step := entity.Step(values.Get("step"))
	if !entity.IsValidStep(step) {
		return nil, apperror.Validation("unknown step parameter")
	}

	substep := values.Get("substep")
	if substep != "" && !substepPattern.MatchString(substep) {
		return nil, apperror.Validation("invalid substep parameter")
	}

	return &entity.NavigationRecord{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Step:       step,
		Substep:    substep,
		URL:        StepURL(step),
		Transition: entity.TransitionReplace,
		Timestamp:  time.Now(),
	}, nil
}

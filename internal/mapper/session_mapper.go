package mapper

import (
	"encoding/json"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	session := &entity.Session{
		Id:            s.Id,
		UserId:        s.UserId,
		JobId:         s.JobId,
		CurrentStep:   entity.Step(s.CurrentStep),
		QuickCreate:   s.QuickCreate,
		CanResume:     s.CanResume,
		Status:        entity.SessionStatus(s.Status),
		SchemaVersion: s.SchemaVersion,
		CreatedAt:     s.CreatedAt,
		LastActiveAt:  s.LastActiveAt,
		CompletedAt:   s.CompletedAt,
	}

	unmarshalJSON(s.CompletedSteps, &session.CompletedSteps)
	unmarshalJSON(s.SkippedSteps, &session.SkippedSteps)
	unmarshalJSON(s.StepProgress, &session.StepProgress)
	unmarshalJSON(s.FormData, &session.FormData)
	unmarshalJSON(s.FeatureStates, &session.FeatureStates)
	unmarshalJSON(s.UIState, &session.UIState)

	// A fresh row has no progress JSON yet; an explicit null is corruption
	// and stays nil so the navigation layer can flag it.
	if session.StepProgress == nil && len(s.StepProgress) == 0 {
		session.StepProgress = map[entity.Step]*entity.StepProgress{}
	}
	if session.CompletedSteps == nil {
		session.CompletedSteps = []entity.Step{}
	}
	if session.FormData == nil {
		session.FormData = map[string]interface{}{}
	}
	if session.FeatureStates == nil {
		session.FeatureStates = map[string]interface{}{}
	}
	if session.UIState == nil {
		session.UIState = map[string]interface{}{}
	}

	return session
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:             s.Id,
		UserId:         s.UserId,
		JobId:          s.JobId,
		CurrentStep:    string(s.CurrentStep),
		CompletedSteps: marshalJSON(s.CompletedSteps),
		SkippedSteps:   marshalJSON(s.SkippedSteps),
		StepProgress:   marshalJSON(s.StepProgress),
		FormData:       marshalJSON(s.FormData),
		FeatureStates:  marshalJSON(s.FeatureStates),
		UIState:        marshalJSON(s.UIState),
		QuickCreate:    s.QuickCreate,
		CanResume:      s.CanResume,
		Status:         string(s.Status),
		SchemaVersion:  s.SchemaVersion,
		CreatedAt:      s.CreatedAt,
		LastActiveAt:   s.LastActiveAt,
		CompletedAt:    s.CompletedAt,
	}
}

func marshalJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func unmarshalJSON(data datatypes.JSON, target interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}

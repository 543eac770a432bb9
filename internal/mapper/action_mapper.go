package mapper

import (
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"
)

type ActionMapper struct{}

func NewActionMapper() *ActionMapper {
	return &ActionMapper{}
}

func (m *ActionMapper) ToEntity(a *model.QueuedAction) *entity.QueuedAction {
	if a == nil {
		return nil
	}

	action := &entity.QueuedAction{
		Id:              a.Id,
		SessionId:       a.SessionId,
		Type:            entity.ActionType(a.Type),
		Priority:        entity.ActionPriority(a.Priority),
		Status:          entity.ActionStatus(a.Status),
		Attempts:        a.Attempts,
		MaxAttempts:     a.MaxAttempts,
		RequiresNetwork: a.RequiresNetwork,
		LastError:       a.LastError,
		Timestamp:       a.Timestamp,
		UpdatedAt:       a.UpdatedAt,
	}

	unmarshalJSON(a.Payload, &action.Payload)
	unmarshalJSON(a.RollbackData, &action.RollbackData)

	return action
}

func (m *ActionMapper) ToModel(a *entity.QueuedAction) *model.QueuedAction {
	if a == nil {
		return nil
	}

	return &model.QueuedAction{
		Id:              a.Id,
		SessionId:       a.SessionId,
		Type:            string(a.Type),
		Payload:         marshalJSON(a.Payload),
		Priority:        string(a.Priority),
		Status:          string(a.Status),
		Attempts:        a.Attempts,
		MaxAttempts:     a.MaxAttempts,
		RequiresNetwork: a.RequiresNetwork,
		LastError:       a.LastError,
		RollbackData:    marshalJSON(a.RollbackData),
		Timestamp:       a.Timestamp,
		UpdatedAt:       a.UpdatedAt,
	}
}

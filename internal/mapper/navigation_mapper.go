package mapper

import (
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"
)

type NavigationMapper struct{}

func NewNavigationMapper() *NavigationMapper {
	return &NavigationMapper{}
}

func (m *NavigationMapper) ToEntity(n *model.NavigationState) *entity.NavigationRecord {
	if n == nil {
		return nil
	}

	record := &entity.NavigationRecord{
		Id:         n.Id,
		SessionId:  n.SessionId,
		Step:       entity.Step(n.Step),
		Substep:    n.Substep,
		URL:        n.URL,
		Transition: entity.TransitionKind(n.Transition),
		Timestamp:  n.Timestamp,
	}

	unmarshalJSON(n.Parameters, &record.Parameters)

	return record
}

func (m *NavigationMapper) ToModel(n *entity.NavigationRecord) *model.NavigationState {
	if n == nil {
		return nil
	}

	return &model.NavigationState{
		Id:         n.Id,
		SessionId:  n.SessionId,
		Step:       string(n.Step),
		Substep:    n.Substep,
		Parameters: marshalJSON(n.Parameters),
		URL:        n.URL,
		Transition: string(n.Transition),
		Timestamp:  n.Timestamp,
	}
}

package mapper

import (
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"
)

type EngagementMapper struct{}

func NewEngagementMapper() *EngagementMapper {
	return &EngagementMapper{}
}

func (m *EngagementMapper) ToEntity(p *model.EngagementProfile) *entity.EngagementProfile {
	if p == nil {
		return nil
	}

	profile := &entity.EngagementProfile{
		Id:              p.Id,
		UserId:          p.UserId,
		Industry:        p.Industry,
		ExperienceLevel: p.ExperienceLevel,
		BehaviorPattern: p.BehaviorPattern,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	unmarshalJSON(p.VisitCounts, &profile.VisitCounts)
	unmarshalJSON(p.TimeSpentMs, &profile.TimeSpentMs)
	unmarshalJSON(p.InteractionCounts, &profile.InteractionCounts)
	unmarshalJSON(p.SessionDepths, &profile.SessionDepths)
	unmarshalJSON(p.DismissalHistory, &profile.DismissalHistory)
	unmarshalJSON(p.ConversionAttempts, &profile.ConversionAttempts)

	if profile.VisitCounts == nil {
		profile.VisitCounts = map[string]int{}
	}
	if profile.TimeSpentMs == nil {
		profile.TimeSpentMs = map[string]int64{}
	}
	if profile.InteractionCounts == nil {
		profile.InteractionCounts = map[string]int{}
	}
	if profile.SessionDepths == nil {
		profile.SessionDepths = map[string][]int{}
	}

	return profile
}

func (m *EngagementMapper) ToModel(p *entity.EngagementProfile) *model.EngagementProfile {
	if p == nil {
		return nil
	}

	return &model.EngagementProfile{
		Id:                 p.Id,
		UserId:             p.UserId,
		VisitCounts:        marshalJSON(p.VisitCounts),
		TimeSpentMs:        marshalJSON(p.TimeSpentMs),
		InteractionCounts:  marshalJSON(p.InteractionCounts),
		SessionDepths:      marshalJSON(p.SessionDepths),
		DismissalHistory:   marshalJSON(p.DismissalHistory),
		ConversionAttempts: marshalJSON(p.ConversionAttempts),
		Industry:           p.Industry,
		ExperienceLevel:    p.ExperienceLevel,
		BehaviorPattern:    p.BehaviorPattern,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

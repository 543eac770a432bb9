package service

import (
	"context"
	"time"

	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/logger"
	"cv-builder-be/internal/pkg/mailer"
	"cv-builder-be/internal/repository/unitofwork"
	"cv-builder-be/pkg/engagement"
	"cv-builder-be/pkg/events"
	pktNats "cv-builder-be/pkg/nats"

	"github.com/google/uuid"
)

type IEngagementService interface {
	TrackEvent(ctx context.Context, req *dto.TrackEventRequest) (*dto.TrackEventResponse, error)
	Summary(ctx context.Context, userId uuid.UUID, feature string) (*dto.EngagementSummaryResponse, error)
}

type engagementService struct {
	uowFactory   unitofwork.RepositoryFactory
	publisher    *pktNats.Publisher
	emailService mailer.IEmailService
	logger       logger.ILogger
	incentives   []engagement.Incentive
}

func NewEngagementService(
	uowFactory unitofwork.RepositoryFactory,
	publisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IEngagementService {
	return &engagementService{
		uowFactory:   uowFactory,
		publisher:    publisher,
		emailService: emailService,
		logger:       log,
		incentives:   defaultIncentives(),
	}
}

func (s *engagementService) TrackEvent(ctx context.Context, req *dto.TrackEventRequest) (*dto.TrackEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.EngagementRepository().FindByUserId(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.EngagementProfile{
			Id:                uuid.New(),
			UserId:            req.UserId,
			VisitCounts:       make(map[string]int),
			TimeSpentMs:       make(map[string]int64),
			InteractionCounts: make(map[string]int),
			SessionDepths:     make(map[string][]int),
			CreatedAt:         time.Now(),
		}
	}

	now := time.Now()
	previousStage := engagement.DetermineEngagementStage(toEngagementData(profile))

	switch req.Kind {
	case "visit":
		profile.VisitCounts[req.Feature]++
		if req.Depth > 0 {
			profile.SessionDepths[req.Feature] = append(profile.SessionDepths[req.Feature], req.Depth)
		}
	case "time":
		profile.TimeSpentMs[req.Feature] += req.TimeSpentMs
	case "interaction":
		profile.InteractionCounts[req.Feature]++
	case "dismissal":
		profile.DismissalHistory = append(profile.DismissalHistory, entity.DismissalEvent{
			Feature:   req.Feature,
			Reason:    req.Reason,
			Timestamp: now,
		})
	case "conversion_attempt":
		profile.ConversionAttempts = append(profile.ConversionAttempts, entity.ConversionAttempt{
			Feature:   req.Feature,
			Stage:     req.Stage,
			Outcome:   req.Outcome,
			Timestamp: now,
		})
		s.publishConversionAttempt(ctx, req)
	}

	if req.Industry != "" {
		profile.Industry = req.Industry
	}
	if req.ExperienceLevel != "" {
		profile.ExperienceLevel = req.ExperienceLevel
	}

	data := toEngagementData(profile)
	behavior := engagement.AnalyzeUserBehavior(data)
	profile.BehaviorPattern = behavior.Pattern
	profile.UpdatedAt = &now

	if err := uow.EngagementRepository().Upsert(ctx, profile); err != nil {
		return nil, err
	}

	score := engagement.CalculateEngagementScore(data)
	stage := engagement.DetermineEngagementStage(data)

	if stage != previousStage {
		s.publishStageChange(ctx, req.UserId, previousStage, stage, score)
		if stage == engagement.StageConversion && req.Email != "" {
			s.sendIncentiveOffer(req.Email, data, stage, score, req.Feature, now)
		}
	}

	return &dto.TrackEventResponse{
		UserId: req.UserId,
		Score:  score,
		Stage:  string(stage),
	}, nil
}

func (s *engagementService) Summary(ctx context.Context, userId uuid.UUID, feature string) (*dto.EngagementSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.EngagementRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// A user with no history is a discovery-stage blank slate.
		return &dto.EngagementSummaryResponse{
			UserId: userId,
			Stage:  string(engagement.StageDiscovery),
		}, nil
	}

	data := toEngagementData(profile)
	score := engagement.CalculateEngagementScore(data)
	stage := engagement.DetermineEngagementStage(data)
	behavior := engagement.AnalyzeUserBehavior(data)
	data.Profile.DecisionSpeed = behavior.DecisionSpeed

	engCtx := engagement.Context{
		Data:    data,
		Stage:   stage,
		Score:   score,
		Feature: feature,
		Now:     time.Now(),
	}

	probability := engagement.PredictConversionProbability(data, engCtx)
	message := engagement.GeneratePersonalizedMessaging(stage, engCtx)

	resp := &dto.EngagementSummaryResponse{
		UserId:                userId,
		Score:                 score,
		Stage:                 string(stage),
		BehaviorPattern:       behavior.Pattern,
		ConversionProbability: probability,
		Headline:              message.Headline,
		Subtext:               message.Description,
		CallToAction:          message.CTAText,
	}

	if incentive := engagement.SelectOptimalIncentive(engCtx, s.incentives); incentive != nil {
		resp.Incentive = &dto.IncentiveDTO{
			Id:       incentive.Id,
			Type:     string(incentive.Type),
			Headline: incentive.Headline,
			Value:    incentive.Value,
			Urgent:   incentive.Urgent,
		}
	}

	return resp, nil
}

func (s *engagementService) publishConversionAttempt(ctx context.Context, req *dto.TrackEventRequest) {
	if s.publisher == nil {
		return
	}
	event := events.New(events.TypeConversionAttempt, map[string]interface{}{
		"user_id": req.UserId.String(),
		"feature": req.Feature,
		"stage":   req.Stage,
		"outcome": req.Outcome,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("EngagementService", "failed to publish conversion attempt", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}
}

func (s *engagementService) publishStageChange(ctx context.Context, userId uuid.UUID, from, to engagement.Stage, score float64) {
	if s.publisher == nil {
		return
	}
	event := events.New(events.TypeEngagementStageChange, map[string]interface{}{
		"user_id": userId.String(),
		"from":    string(from),
		"to":      string(to),
		"score":   score,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("EngagementService", "failed to publish stage change", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *engagementService) sendIncentiveOffer(email string, data *engagement.UserEngagementData, stage engagement.Stage, score float64, feature string, now time.Time) {
	if s.emailService == nil {
		return
	}
	engCtx := engagement.Context{Data: data, Stage: stage, Score: score, Feature: feature, Now: now}
	incentive := engagement.SelectOptimalIncentive(engCtx, s.incentives)
	if incentive == nil {
		return
	}
	message := engagement.GeneratePersonalizedMessaging(stage, engCtx)
	if err := s.emailService.SendIncentiveOffer(email, incentive.Headline, message.CTAText); err != nil {
		s.logger.Warn("EngagementService", "failed to send incentive email", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func toEngagementData(profile *entity.EngagementProfile) *engagement.UserEngagementData {
	return &engagement.UserEngagementData{
		VisitCounts:        profile.VisitCounts,
		TimeSpentMs:        profile.TimeSpentMs,
		InteractionCounts:  profile.InteractionCounts,
		SessionDepths:      profile.SessionDepths,
		DismissalHistory:   profile.DismissalHistory,
		ConversionAttempts: profile.ConversionAttempts,
		Profile: engagement.UserProfile{
			Industry:         profile.Industry,
			ExperienceLevel:  profile.ExperienceLevel,
			BehaviorPattern:  profile.BehaviorPattern,
			AccountCreatedAt: profile.CreatedAt,
		},
	}
}

func defaultIncentives() []engagement.Incentive {
	return []engagement.Incentive{
		{
			Id:       "premium-20-off",
			Type:     engagement.IncentiveDiscount,
			Value:    20,
			Headline: "20% off your first month of Premium",
			Urgent:   false,
			Conditions: engagement.IncentiveConditions{
				MinEngagementScore: 40,
				MaxDismissals:      2,
			},
		},
		{
			Id:       "premium-trial-7d",
			Type:     engagement.IncentiveTrial,
			Value:    7,
			Headline: "Try Premium free for 7 days",
			Urgent:   false,
			Conditions: engagement.IncentiveConditions{
				MinEngagementScore: 25,
				MaxDismissals:      3,
				MaxTenureDays:      30,
			},
		},
		{
			Id:       "bundle-cv-letter",
			Type:     engagement.IncentiveBundle,
			Value:    30,
			Headline: "CV + cover letter bundle, 30% off",
			Urgent:   false,
			Conditions: engagement.IncentiveConditions{
				MinEngagementScore: 45,
				MaxDismissals:      2,
				RequiredStage:      engagement.StageConsideration,
			},
		},
		{
			Id:       "checkout-scarcity",
			Type:     engagement.IncentiveScarcity,
			Value:    15,
			Headline: "Offer ends tonight: 15% off Premium",
			Urgent:   true,
			Conditions: engagement.IncentiveConditions{
				MinEngagementScore: 60,
				MaxDismissals:      1,
				RequiredStage:      engagement.StageConversion,
			},
		},
		{
			Id:       "social-proof-nudge",
			Type:     engagement.IncentiveSocialProof,
			Value:    0,
			Headline: "Join 40,000 professionals who upgraded this year",
			Urgent:   false,
			Conditions: engagement.IncentiveConditions{
				MinEngagementScore: 10,
				MaxDismissals:      -1,
			},
		},
	}
}

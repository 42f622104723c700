package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/events"
	"github.com/dealhunt/engagement-service/internal/metrics"
	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/pkg/log"
)

// LikeInput — постановка/снятие реакции актором.
type LikeInput struct {
	Actor    models.Actor
	Target   models.LikeTarget
	TargetID uuid.UUID
	Reaction models.Reaction
}

func (in *LikeInput) validate() error {
	if err := validateActor(in.Actor); err != nil {
		return err
	}

	if in.TargetID == uuid.Nil {
		return ErrInvalidArgument
	}

	switch in.Target {
	case models.TargetDiscussion, models.TargetReply:
	default:
		return ErrInvalidArgument
	}

	if in.Reaction == "" {
		in.Reaction = models.ReactionLike
	}

	if in.Reaction != models.ReactionLike {
		return ErrInvalidArgument
	}

	return nil
}

// SetLike — идемпотентная постановка реакции.
//
// Повторный вызов с теми же (актор, цель, реакция) — успех без изменения
// состояния: дубликат гасится уникальным индексом хранилища, а не
// проверкой перед вставкой, так что гонки check-then-act нет.
//
// Поведение/ошибки:
//   - ErrNotFound — цель отсутствует или скрыта;
//   - ErrConflict/ErrUnavailable — после исчерпания повторов.
func (s *Service) SetLike(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	const op = "service/likes/SetLike"

	lg := log.From(ctx).With(
		"op", op,
		"actor_id", in.Actor.ID.String(),
		"target", string(in.Target),
		"target_id", in.TargetID.String(),
	)

	if err := in.validate(); err != nil {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var state *models.LikeState
	err := s.withRetry(ctx, func() error {
		var err error
		state, err = s.storage.SetLike(ctx, in.Target, in.TargetID, in.Actor.ID, in.Reaction)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "SetLike", err))
	}

	metrics.EngagementEvents.WithLabelValues("like_set").Inc()
	s.notify(ctx, events.KeyLikeSet, events.LikeEvent{
		TargetID:   in.TargetID,
		TargetKind: string(in.Target),
		ActorID:    in.Actor.ID,
		LikesCount: state.LikesCount,
		OccurredAt: time.Now().UTC(),
	})

	return state, nil
}

// ClearLike — идемпотентное снятие реакции; отсутствие лайка — no-op успех.
func (s *Service) ClearLike(ctx context.Context, in LikeInput) (*models.LikeState, error) {
	const op = "service/likes/ClearLike"

	lg := log.From(ctx).With(
		"op", op,
		"actor_id", in.Actor.ID.String(),
		"target", string(in.Target),
		"target_id", in.TargetID.String(),
	)

	if err := in.validate(); err != nil {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var state *models.LikeState
	err := s.withRetry(ctx, func() error {
		var err error
		state, err = s.storage.ClearLike(ctx, in.Target, in.TargetID, in.Actor.ID, in.Reaction)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "ClearLike", err))
	}

	metrics.EngagementEvents.WithLabelValues("like_cleared").Inc()
	s.notify(ctx, events.KeyLikeCleared, events.LikeEvent{
		TargetID:   in.TargetID,
		TargetKind: string(in.Target),
		ActorID:    in.Actor.ID,
		LikesCount: state.LikesCount,
		OccurredAt: time.Now().UTC(),
	})

	return state, nil
}

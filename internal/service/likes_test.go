package service

// Тесты сервисного слоя (internal/service/likes.go):
// валидация входа, идемпотентность set/clear, маппинг ошибок, повторы.

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/storage"
)

// Валидация: актор, target, target_id, неизвестная реакция.
func TestService_SetLike_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	actor := testActor()
	id := uuid.New()

	// пустой актор
	_, err := s.SetLike(ctx, LikeInput{Target: models.TargetDiscussion, TargetID: id})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// пустой target_id
	_, err = s.SetLike(ctx, LikeInput{Actor: actor, Target: models.TargetDiscussion})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// неизвестная цель
	_, err = s.SetLike(ctx, LikeInput{Actor: actor, Target: "comment", TargetID: id})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// неизвестная реакция
	_, err = s.SetLike(ctx, LikeInput{
		Actor: actor, Target: models.TargetReply, TargetID: id, Reaction: "dislike",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Пустая реакция дефолтится в like; аргументы доходят до стораджа как есть.
func TestService_SetLike_OK_DefaultReaction(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := testActor()
	id := uuid.New()
	want := &models.LikeState{TargetID: id, Target: models.TargetDiscussion, Liked: true, LikesCount: 5}

	ms.EXPECT().
		SetLike(gomock.Any(), models.TargetDiscussion, id, actor.ID, models.ReactionLike).
		Return(want, nil)

	got, err := s.SetLike(context.Background(), LikeInput{
		Actor: actor, Target: models.TargetDiscussion, TargetID: id,
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Идемпотентность — контракт стораджа: повторный set возвращает то же
// состояние; сервис не добавляет своих проверок и не падает.
func TestService_SetLike_Idempotent(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := testActor()
	id := uuid.New()
	state := &models.LikeState{TargetID: id, Target: models.TargetReply, Liked: true, LikesCount: 1}

	ms.EXPECT().
		SetLike(gomock.Any(), models.TargetReply, id, actor.ID, models.ReactionLike).
		Return(state, nil).
		Times(2)

	in := LikeInput{Actor: actor, Target: models.TargetReply, TargetID: id}

	first, err := s.SetLike(context.Background(), in)
	require.NoError(t, err)
	second, err := s.SetLike(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// Маппинг: цель не найдена/скрыта.
func TestService_SetLike_NotFound(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := testActor()
	id := uuid.New()

	ms.EXPECT().
		SetLike(gomock.Any(), models.TargetDiscussion, id, actor.ID, models.ReactionLike).
		Return(nil, storage.ErrNotFound)

	_, err := s.SetLike(context.Background(), LikeInput{
		Actor: actor, Target: models.TargetDiscussion, TargetID: id,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

// Повтор при ErrConflict: второй вызов проходит.
func TestService_SetLike_RetriesOnConflict(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := testActor()
	id := uuid.New()
	want := &models.LikeState{TargetID: id, Target: models.TargetDiscussion, Liked: true, LikesCount: 3}

	gomock.InOrder(
		ms.EXPECT().
			SetLike(gomock.Any(), models.TargetDiscussion, id, actor.ID, models.ReactionLike).
			Return(nil, storage.ErrConflict),
		ms.EXPECT().
			SetLike(gomock.Any(), models.TargetDiscussion, id, actor.ID, models.ReactionLike).
			Return(want, nil),
	)

	got, err := s.SetLike(context.Background(), LikeInput{
		Actor: actor, Target: models.TargetDiscussion, TargetID: id,
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// ClearLike: отсутствие лайка — no-op успех (Liked=false, счётчик не падает).
func TestService_ClearLike_NoopWhenAbsent(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	actor := testActor()
	id := uuid.New()
	want := &models.LikeState{TargetID: id, Target: models.TargetReply, Liked: false, LikesCount: 0}

	ms.EXPECT().
		ClearLike(gomock.Any(), models.TargetReply, id, actor.ID, models.ReactionLike).
		Return(want, nil)

	got, err := s.ClearLike(context.Background(), LikeInput{
		Actor: actor, Target: models.TargetReply, TargetID: id,
	})
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.False(t, got.Liked)
}

// ClearLike: валидация и маппинг NotFound.
func TestService_ClearLike_Errors(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	actor := testActor()
	id := uuid.New()

	_, err := s.ClearLike(ctx, LikeInput{Actor: actor, Target: "comment", TargetID: id})
	require.ErrorIs(t, err, ErrInvalidArgument)

	ms.EXPECT().
		ClearLike(gomock.Any(), models.TargetDiscussion, id, actor.ID, models.ReactionLike).
		Return(nil, storage.ErrNotFound)
	_, err = s.ClearLike(ctx, LikeInput{
		Actor: actor, Target: models.TargetDiscussion, TargetID: id,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

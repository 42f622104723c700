package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/storage"
)

// SetLike идемпотентно ставит реакцию на обсуждение или ответ.
//
// Идемпотентность обеспечивает уникальный индекс (цель, актор, реакция):
// вставка идёт через ON CONFLICT DO NOTHING, и только фактически вставленная
// строка (RowsAffected == 1) инкрементирует счётчик цели — в той же
// транзакции. Повторный лайк — no-op с актуальным счётчиком в ответе.
// Вставка лайка обсуждения дополнительно сдвигает last_activity_at.
func (s *Storage) SetLike(ctx context.Context, target models.LikeTarget, targetID, actorID uuid.UUID, reaction models.Reaction) (*models.LikeState, error) {
	const op = "storage/postgres/SetLike"

	state := &models.LikeState{TargetID: targetID, Target: target, Liked: true}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		switch target {
		case models.TargetDiscussion:
			if err := lockDiscussion(ctx, tx, targetID); err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, `
			INSERT INTO discussion_likes (id, discussion_id, actor_id, reaction)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT ON CONSTRAINT ux_discussion_likes DO NOTHING
			`, uuid.New(), targetID, actorID, string(reaction))
			if err != nil {
				return mapError(err)
			}

			if tag.RowsAffected() == 0 {
				// Уже лайкнуто — отдаём текущее состояние.
				return tx.QueryRow(ctx, `
				SELECT likes_count FROM discussions WHERE id = $1
				`, targetID).Scan(&state.LikesCount)
			}

			return tx.QueryRow(ctx, `
			UPDATE discussions
			SET likes_count = likes_count + 1, last_activity_at = now()
			WHERE id = $1
			RETURNING likes_count
			`, targetID).Scan(&state.LikesCount)

		case models.TargetReply:
			if err := lockReply(ctx, tx, targetID); err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, `
			INSERT INTO reply_likes (id, reply_id, actor_id, reaction)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT ON CONSTRAINT ux_reply_likes DO NOTHING
			`, uuid.New(), targetID, actorID, string(reaction))
			if err != nil {
				return mapError(err)
			}

			if tag.RowsAffected() == 0 {
				return tx.QueryRow(ctx, `
				SELECT likes_count FROM discussion_replies WHERE id = $1
				`, targetID).Scan(&state.LikesCount)
			}

			return tx.QueryRow(ctx, `
			UPDATE discussion_replies
			SET likes_count = likes_count + 1
			WHERE id = $1
			RETURNING likes_count
			`, targetID).Scan(&state.LikesCount)

		default:
			return fmt.Errorf("unknown like target %q", target)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

// ClearLike идемпотентно снимает реакцию. Отсутствующий лайк — no-op.
// Декремент флорится GREATEST(0, …), чтобы повторная обработка события
// удаления не увела счётчик ниже нуля. last_activity_at не сдвигается.
func (s *Storage) ClearLike(ctx context.Context, target models.LikeTarget, targetID, actorID uuid.UUID, reaction models.Reaction) (*models.LikeState, error) {
	const op = "storage/postgres/ClearLike"

	state := &models.LikeState{TargetID: targetID, Target: target, Liked: false}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		switch target {
		case models.TargetDiscussion:
			if err := lockDiscussion(ctx, tx, targetID); err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, `
			DELETE FROM discussion_likes
			WHERE discussion_id = $1 AND actor_id = $2 AND reaction = $3
			`, targetID, actorID, string(reaction))
			if err != nil {
				return mapError(err)
			}

			if tag.RowsAffected() == 0 {
				return tx.QueryRow(ctx, `
				SELECT likes_count FROM discussions WHERE id = $1
				`, targetID).Scan(&state.LikesCount)
			}

			return tx.QueryRow(ctx, `
			UPDATE discussions
			SET likes_count = GREATEST(0, likes_count - 1)
			WHERE id = $1
			RETURNING likes_count
			`, targetID).Scan(&state.LikesCount)

		case models.TargetReply:
			if err := lockReply(ctx, tx, targetID); err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, `
			DELETE FROM reply_likes
			WHERE reply_id = $1 AND actor_id = $2 AND reaction = $3
			`, targetID, actorID, string(reaction))
			if err != nil {
				return mapError(err)
			}

			if tag.RowsAffected() == 0 {
				return tx.QueryRow(ctx, `
				SELECT likes_count FROM discussion_replies WHERE id = $1
				`, targetID).Scan(&state.LikesCount)
			}

			return tx.QueryRow(ctx, `
			UPDATE discussion_replies
			SET likes_count = GREATEST(0, likes_count - 1)
			WHERE id = $1
			RETURNING likes_count
			`, targetID).Scan(&state.LikesCount)

		default:
			return fmt.Errorf("unknown like target %q", target)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

// lockDiscussion блокирует строку видимого обсуждения на время транзакции.
// Отсутствие/скрытость — storage.ErrNotFound.
func lockDiscussion(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var status string
	err := tx.QueryRow(ctx, `
	SELECT status FROM discussions WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}

		return mapError(err)
	}

	if status == string(models.StatusDeleted) || status == string(models.StatusHidden) {
		return storage.ErrNotFound
	}

	return nil
}

// lockReply — то же для строки ответа.
func lockReply(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var status string
	err := tx.QueryRow(ctx, `
	SELECT status FROM discussion_replies WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}

		return mapError(err)
	}

	if status == string(models.StatusDeleted) || status == string(models.StatusHidden) {
		return storage.ErrNotFound
	}

	return nil
}

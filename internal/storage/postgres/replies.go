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

// replyColumns — единый список колонок таблицы discussion_replies
// для SELECT/RETURNING.
const replyColumns = `
id, discussion_id, parent_reply_id, author_id, author_name, content,
reply_level, reply_path, likes_count, child_replies_count, status,
is_edited, created_at, updated_at
`

// scanReply сканирует одну строку ответа в доменную модель.
// parent_reply_id NULL мапится в uuid.Nil.
func scanReply(row pgx.Row) (*models.Reply, error) {
	var r models.Reply
	var parent *uuid.UUID
	var status string

	if err := row.Scan(
		&r.ID,
		&r.DiscussionID,
		&parent,
		&r.AuthorID,
		&r.AuthorName,
		&r.Content,
		&r.Level,
		&r.Path,
		&r.LikesCount,
		&r.ChildRepliesCount,
		&status,
		&r.IsEdited,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if parent != nil {
		r.ParentReplyID = *parent
	}

	r.Status = models.Status(status)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()

	return &r, nil
}

// CreateReply вставляет ответ в одной транзакции с вычислением иерархии
// и обновлением счётчиков:
//  1. блокируется строка обсуждения (FOR UPDATE) — она же носитель
//     replies_count/last_activity_at;
//  2. для вложенного ответа читается родитель: level = parent.level + 1,
//     path = parent.path ++ '.' ++ hex(id); глубина сверяется с MaxDepth;
//  3. вставляется фактовая строка;
//  4. инкрементируются replies_count обсуждения и child_replies_count родителя.
//
// Level/path существующих строк после вставки не меняются, поэтому
// конкурирующие вставки под одним родителем не гонятся на этих полях —
// сериализуется только инкремент счётчиков, за счёт блокировки строк.
func (s *Storage) CreateReply(ctx context.Context, r models.Reply) (*models.Reply, error) {
	const op = "storage/postgres/CreateReply"

	var result *models.Reply

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var discStatus string
		err := tx.QueryRow(ctx, `
		SELECT status FROM discussions WHERE id = $1 FOR UPDATE
		`, r.DiscussionID).Scan(&discStatus)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return mapError(err)
		}

		if discStatus == string(models.StatusDeleted) || discStatus == string(models.StatusHidden) {
			return storage.ErrNotFound
		}

		id := uuid.New()
		level := int32(0)
		path := models.ChildPath("", id)

		if r.ParentReplyID != uuid.Nil {
			var parentDiscussion uuid.UUID
			var parentLevel int32
			var parentPath, parentStatus string

			err := tx.QueryRow(ctx, `
			SELECT discussion_id, reply_level, reply_path, status
			FROM discussion_replies WHERE id = $1
			`, r.ParentReplyID).Scan(&parentDiscussion, &parentLevel, &parentPath, &parentStatus)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return storage.ErrParentNotFound
				}

				return mapError(err)
			}

			// Родитель обязан принадлежать тому же обсуждению и быть видимым.
			if parentDiscussion != r.DiscussionID || parentStatus == string(models.StatusDeleted) {
				return storage.ErrParentNotFound
			}

			level = parentLevel + 1
			if level > s.cfg.Limits.MaxDepth {
				return storage.ErrMaxDepthExceeded
			}

			path = models.ChildPath(parentPath, id)
		}

		var parentArg *uuid.UUID
		if r.ParentReplyID != uuid.Nil {
			parentArg = &r.ParentReplyID
		}

		q := `
		INSERT INTO discussion_replies
		(id, discussion_id, parent_reply_id, author_id, author_name, content, reply_level, reply_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + replyColumns

		result, err = scanReply(tx.QueryRow(ctx, q,
			id, r.DiscussionID, parentArg, r.AuthorID, r.AuthorName, r.Content, level, path))
		if err != nil {
			return mapError(err)
		}

		if _, err := tx.Exec(ctx, `
		UPDATE discussions
		SET replies_count = replies_count + 1, last_activity_at = now()
		WHERE id = $1
		`, r.DiscussionID); err != nil {
			return mapError(err)
		}

		if parentArg != nil {
			if _, err := tx.Exec(ctx, `
			UPDATE discussion_replies
			SET child_replies_count = child_replies_count + 1
			WHERE id = $1
			`, *parentArg); err != nil {
				return mapError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateReply редактирует content от имени актора и ставит is_edited.
// Чужая строка — storage.ErrForbidden.
func (s *Storage) UpdateReply(ctx context.Context, actorID, id uuid.UUID, content string) (*models.Reply, error) {
	const op = "storage/postgres/UpdateReply"

	var result *models.Reply

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var authorID uuid.UUID
		var status string

		err := tx.QueryRow(ctx, `
		SELECT author_id, status FROM discussion_replies WHERE id = $1 FOR UPDATE
		`, id).Scan(&authorID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return mapError(err)
		}

		if status == string(models.StatusDeleted) || status == string(models.StatusHidden) {
			return storage.ErrNotFound
		}

		if authorID != actorID {
			return storage.ErrForbidden
		}

		q := `
		UPDATE discussion_replies
		SET content = $2, is_edited = TRUE, updated_at = now()
		WHERE id = $1
		RETURNING ` + replyColumns

		result, err = scanReply(tx.QueryRow(ctx, q, id, content))
		if err != nil {
			return mapError(err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// DeleteReply жёстко удаляет ответ вместе со всем поддеревом (по префиксу
// материализованного пути) и лайками поддерева, в одной транзакции
// с декрементом счётчиков:
//   - replies_count обсуждения уменьшается ровно на число удалённых строк;
//   - child_replies_count родителя — на единицу.
//
// Декременты флорятся GREATEST(0, …): повторная обработка события удаления
// не может увести счётчик ниже нуля.
func (s *Storage) DeleteReply(ctx context.Context, actorID, id uuid.UUID) error {
	const op = "storage/postgres/DeleteReply"

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var discussionID uuid.UUID
		var parent *uuid.UUID
		var authorID uuid.UUID
		var path string

		err := tx.QueryRow(ctx, `
		SELECT discussion_id, parent_reply_id, author_id, reply_path
		FROM discussion_replies WHERE id = $1 FOR UPDATE
		`, id).Scan(&discussionID, &parent, &authorID, &path)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return mapError(err)
		}

		if authorID != actorID {
			return storage.ErrForbidden
		}

		// Блокировка строки обсуждения до каскада — тот же порядок
		// захвата, что и в CreateReply, во избежание взаимоблокировок.
		if _, err := tx.Exec(ctx, `
		SELECT 1 FROM discussions WHERE id = $1 FOR UPDATE
		`, discussionID); err != nil {
			return mapError(err)
		}

		// Лайки поддерева удаляются явно, хотя FK и так каскадный:
		// счётчики и факты должны уходить в одном, читаемом месте.
		if _, err := tx.Exec(ctx, `
		DELETE FROM reply_likes WHERE reply_id IN (
			SELECT id FROM discussion_replies
			WHERE discussion_id = $1 AND (reply_path = $2 OR reply_path LIKE $2 || '.%')
		)`, discussionID, path); err != nil {
			return mapError(err)
		}

		tag, err := tx.Exec(ctx, `
		DELETE FROM discussion_replies
		WHERE discussion_id = $1 AND (reply_path = $2 OR reply_path LIKE $2 || '.%')
		`, discussionID, path)
		if err != nil {
			return mapError(err)
		}

		removed := tag.RowsAffected()

		if _, err := tx.Exec(ctx, `
		UPDATE discussions
		SET replies_count = GREATEST(0, replies_count - $2)
		WHERE id = $1
		`, discussionID, removed); err != nil {
			return mapError(err)
		}

		if parent != nil {
			if _, err := tx.Exec(ctx, `
			UPDATE discussion_replies
			SET child_replies_count = GREATEST(0, child_replies_count - 1)
			WHERE id = $1
			`, *parent); err != nil {
				return mapError(err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Thread возвращает все видимые ответы обсуждения одним отсортированным
// сканом по reply_path: сегменты пути имеют фиксированную ширину, поэтому
// лексический порядок совпадает с depth-first обходом дерева, и вызывающая
// сторона восстанавливает вложенность сравнением префиксов путей.
func (s *Storage) Thread(ctx context.Context, discussionID, viewerID uuid.UUID) ([]models.ReplyView, error) {
	const op = "storage/postgres/Thread"

	q := `
	SELECT ` + replyColumns + `,
	EXISTS (
		SELECT 1 FROM reply_likes
		WHERE reply_id = discussion_replies.id AND actor_id = $2 AND reaction = 'like'
	) AS viewer_has_liked
	FROM discussion_replies
	WHERE discussion_id = $1 AND status IN ` + visibleStatuses + `
	ORDER BY reply_path`

	rows, err := s.db.Query(ctx, q, discussionID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer rows.Close()

	var items []models.ReplyView
	for rows.Next() {
		var view models.ReplyView
		var parent *uuid.UUID
		var status string

		if scanErr := rows.Scan(
			&view.ID,
			&view.DiscussionID,
			&parent,
			&view.AuthorID,
			&view.AuthorName,
			&view.Content,
			&view.Level,
			&view.Path,
			&view.LikesCount,
			&view.ChildRepliesCount,
			&status,
			&view.IsEdited,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.ViewerHasLiked,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		if parent != nil {
			view.ParentReplyID = *parent
		}

		view.Status = models.Status(status)
		view.CreatedAt = view.CreatedAt.UTC()
		view.UpdatedAt = view.UpdatedAt.UTC()

		items = append(items, view)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

package postgres

import (
	"errors"
	"fmt"
	"strings"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/storage"
)

// discussionColumns — единый список колонок таблицы discussions,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const discussionColumns = `
id, title, content, author_id, author_name, status, is_pinned,
likes_count, replies_count, views_count, created_at, updated_at, last_activity_at
`

// visibleStatuses — статусы, видимые обычному читателю.
// hidden/deleted отдаются как «нет такой записи».
const visibleStatuses = `('active', 'flagged')`

// scanDiscussion сканирует одну строку обсуждения в доменную модель.
func scanDiscussion(row pgx.Row) (*models.Discussion, error) {
	var d models.Discussion
	var status string

	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.AuthorID,
		&d.AuthorName,
		&status,
		&d.IsPinned,
		&d.LikesCount,
		&d.RepliesCount,
		&d.ViewsCount,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.LastActivityAt,
	); err != nil {
		return nil, err
	}

	d.Status = models.Status(status)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	d.LastActivityAt = d.LastActivityAt.UTC()

	return &d, nil
}

// CreateDiscussion вставляет новую запись обсуждения.
// Серверные поля (счётчики, timestamps) выставляет БД.
func (s *Storage) CreateDiscussion(ctx context.Context, d models.Discussion) (*models.Discussion, error) {
	const op = "storage/postgres/CreateDiscussion"

	q := `
	INSERT INTO discussions (id, title, content, author_id, author_name)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + discussionColumns

	row := s.db.QueryRow(ctx, q, uuid.New(), d.Title, d.Content, d.AuthorID, d.AuthorName)

	result, err := scanDiscussion(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return result, nil
}

// UpdateDiscussion выполняет частичный апдейт title/content от имени актора.
// Чужая строка — storage.ErrForbidden; отсутствующая или удалённая — storage.ErrNotFound.
func (s *Storage) UpdateDiscussion(ctx context.Context, actorID, id uuid.UUID, upd storage.DiscussionUpdate) (*models.Discussion, error) {
	const op = "storage/postgres/UpdateDiscussion"

	var result *models.Discussion

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var authorID uuid.UUID
		var status string

		err := tx.QueryRow(ctx, `
		SELECT author_id, status FROM discussions WHERE id = $1 FOR UPDATE
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

		sets := []string{"updated_at = now()"}
		args := []any{id}
		count := 1

		if upd.Title != nil {
			count++
			sets = append(sets, fmt.Sprintf("title = $%d", count))
			args = append(args, *upd.Title)
		}

		if upd.Content != nil {
			count++
			sets = append(sets, fmt.Sprintf("content = $%d", count))
			args = append(args, *upd.Content)
		}

		q := `UPDATE discussions SET ` + strings.Join(sets, ", ") +
			` WHERE id = $1 RETURNING ` + discussionColumns

		result, err = scanDiscussion(tx.QueryRow(ctx, q, args...))
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

// DeleteDiscussion — мягкое удаление: фактовые строки (ответы, лайки)
// не трогаются, обсуждение лишь исчезает из читающих запросов.
func (s *Storage) DeleteDiscussion(ctx context.Context, actorID, id uuid.UUID) error {
	const op = "storage/postgres/DeleteDiscussion"

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var authorID uuid.UUID
		var status string

		err := tx.QueryRow(ctx, `
		SELECT author_id, status FROM discussions WHERE id = $1 FOR UPDATE
		`, id).Scan(&authorID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return mapError(err)
		}

		if status == string(models.StatusDeleted) {
			return storage.ErrNotFound
		}

		if authorID != actorID {
			return storage.ErrForbidden
		}

		if _, err := tx.Exec(ctx, `
		UPDATE discussions SET status = 'deleted', updated_at = now() WHERE id = $1
		`, id); err != nil {
			return mapError(err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DiscussionByID возвращает видимое обсуждение вместе с состоянием лайка
// запрашивающего. viewerID == uuid.Nil даёт ViewerHasLiked == false,
// поскольку ни одна строка лайков не совпадёт с нулевым актором.
func (s *Storage) DiscussionByID(ctx context.Context, id, viewerID uuid.UUID) (*models.DiscussionView, error) {
	const op = "storage/postgres/DiscussionByID"

	q := `
	SELECT ` + discussionColumns + `,
	EXISTS (
		SELECT 1 FROM discussion_likes
		WHERE discussion_id = $1 AND actor_id = $2 AND reaction = 'like'
	) AS viewer_has_liked
	FROM discussions
	WHERE id = $1 AND status IN ` + visibleStatuses

	var view models.DiscussionView
	var status string

	err := s.db.QueryRow(ctx, q, id, viewerID).Scan(
		&view.ID,
		&view.Title,
		&view.Content,
		&view.AuthorID,
		&view.AuthorName,
		&status,
		&view.IsPinned,
		&view.LikesCount,
		&view.RepliesCount,
		&view.ViewsCount,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.LastActivityAt,
		&view.ViewerHasLiked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	view.Status = models.Status(status)
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	view.LastActivityAt = view.LastActivityAt.UTC()

	return &view, nil
}

// ListDiscussions возвращает страницу активных обсуждений.
// Сортировка: закреплённые первыми, далее по ключу:
//   - recent  — last_activity_at DESC;
//   - popular — взвешенная сумма likes_count*2 + replies_count DESC;
//   - views   — views_count DESC.
//
// Пагинация offset/limit — под простой паттерн доступа витрины.
func (s *Storage) ListDiscussions(ctx context.Context, p models.ListParams) (*models.DiscussionPage, error) {
	const op = "storage/postgres/ListDiscussions"

	var orderBy string
	switch p.Sort {
	case models.SortPopular:
		orderBy = "likes_count * 2 + replies_count DESC, last_activity_at DESC"
	case models.SortViews:
		orderBy = "views_count DESC, last_activity_at DESC"
	default:
		orderBy = "last_activity_at DESC"
	}

	limit := p.Limit
	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}

	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	q := `
	SELECT ` + discussionColumns + `
	FROM discussions
	WHERE status = 'active'
	ORDER BY is_pinned DESC, ` + orderBy + `, id DESC
	LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer rows.Close()

	var page models.DiscussionPage
	for rows.Next() {
		d, scanErr := scanDiscussion(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		page.Items = append(page.Items, *d)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	if err := s.db.QueryRow(ctx, `
	SELECT count(*) FROM discussions WHERE status = 'active'
	`).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, mapError(err))
	}

	return &page, nil
}

// RecordView инкрементирует views_count одним UPDATE вне транзакции.
// Потерянные инкременты при экстремальной конкуренции допустимы:
// это приблизительная метрика вовлечённости, а не счётчик с инвариантом.
func (s *Storage) RecordView(ctx context.Context, id uuid.UUID) error {
	const op = "storage/postgres/RecordView"

	tag, err := s.db.Exec(ctx, `
	UPDATE discussions SET views_count = views_count + 1
	WHERE id = $1 AND status IN `+visibleStatuses, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

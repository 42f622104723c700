package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (или скрыта/удалена).
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — указан parent_reply_id, но родитель не найден
	// или принадлежит другому обсуждению.
	ErrParentNotFound = errors.New("parent not found")
	// ErrMaxDepthExceeded — превышена максимально допустимая глубина дерева.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrAlreadyExists — конфликт уникальности (повторный лайк).
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden — актор не владеет строкой и не может её изменять.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict — транзакция не сериализуется (SQLSTATE 40001/40P01);
	// операция целиком подлежит повтору.
	ErrConflict = errors.New("serialization conflict")
	// ErrUnavailable — бэкенд недоступен (connect/timeout); повторяемая ошибка.
	ErrUnavailable = errors.New("storage unavailable")
)

// DiscussionUpdate — частичное обновление обсуждения автором.
// Нулевые указатели означают «поле не менять».
type DiscussionUpdate struct {
	Title   *string
	Content *string
}

// Storage описывает операции engagement-хранилища.
//
// Контракт атомарности: каждая мутация фактовой строки (ответ, лайк)
// выполняется в одной транзакции с обновлением денормализованных счётчиков
// и, для ответов, с вычислением level/path. Прерванная операция либо
// фиксируется целиком, либо откатывается целиком.
type Storage interface {
	// CreateDiscussion вставляет обсуждение. Входной Discussion должен
	// содержать Title, Content, AuthorID, AuthorName; остальные поля
	// вычисляются хранилищем.
	CreateDiscussion(ctx context.Context, d models.Discussion) (*models.Discussion, error)

	// UpdateDiscussion редактирует title/content. Только автор:
	// чужая строка — ErrForbidden; отсутствующая/удалённая — ErrNotFound.
	UpdateDiscussion(ctx context.Context, actorID, id uuid.UUID, upd DiscussionUpdate) (*models.Discussion, error)

	// DeleteDiscussion — мягкое удаление (status='deleted'). Только автор.
	DeleteDiscussion(ctx context.Context, actorID, id uuid.UUID) error

	// DiscussionByID возвращает видимое обсуждение вместе с состоянием
	// лайка запрашивающего (viewerID == uuid.Nil -> ViewerHasLiked=false).
	// Скрытые и удалённые обсуждения — ErrNotFound.
	DiscussionByID(ctx context.Context, id, viewerID uuid.UUID) (*models.DiscussionView, error)

	// ListDiscussions — страница активных обсуждений по ключу сортировки
	// (recent/popular/views), закреплённые всегда первыми.
	ListDiscussions(ctx context.Context, p models.ListParams) (*models.DiscussionPage, error)

	// RecordView инкрементирует views_count. Best-effort: без транзакции
	// и без гарантий от потерянных обновлений (см. описание модели
	// конкурентности в README сервиса).
	RecordView(ctx context.Context, id uuid.UUID) error

	// CreateReply вставляет ответ, вычисляя level/path от родителя и
	// обновляя счётчики обсуждения/родителя в той же транзакции.
	// Возможные ошибки: ErrNotFound (обсуждение), ErrParentNotFound,
	// ErrMaxDepthExceeded.
	CreateReply(ctx context.Context, r models.Reply) (*models.Reply, error)

	// UpdateReply редактирует content и ставит is_edited. Только автор.
	UpdateReply(ctx context.Context, actorID, id uuid.UUID, content string) (*models.Reply, error)

	// DeleteReply жёстко удаляет ответ вместе со всем поддеревом и его
	// лайками; replies_count обсуждения уменьшается ровно на размер
	// поддерева, child_replies_count родителя — на единицу. Только автор.
	DeleteReply(ctx context.Context, actorID, id uuid.UUID) error

	// Thread возвращает все активные ответы обсуждения, отсортированные
	// по материализованному пути (depth-first порядок), с пометками
	// лайков запрашивающего.
	Thread(ctx context.Context, discussionID, viewerID uuid.UUID) ([]models.ReplyView, error)

	// SetLike идемпотентно ставит реакцию. Повторный вызов — no-op:
	// уникальный индекс хранилища исключает гонку check-then-act.
	// Счётчик цели обновляется в той же транзакции, что и вставка факта.
	SetLike(ctx context.Context, target models.LikeTarget, targetID, actorID uuid.UUID, reaction models.Reaction) (*models.LikeState, error)

	// ClearLike идемпотентно снимает реакцию; отсутствие лайка — no-op.
	ClearLike(ctx context.Context, target models.LikeTarget, targetID, actorID uuid.UUID, reaction models.Reaction) (*models.LikeState, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close()
}

package postgres

// Интеграционные тесты хранилища (discussions.go / replies.go / likes.go):
// — поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    обсуждения: создание, частичное редактирование, авторизацию по author_id,
//      мягкое удаление, видимость, списки с пагинацией и закреплением;
//    ответы: level/path от родителя, ограничение глубины, согласованность
//      replies_count/child_replies_count, DFS-порядок Thread,
//      каскадное удаление поддерева вместе с лайками;
//    лайки: идемпотентный set/clear, сохранение инварианта
//      likes_count == числу фактовых строк, floor на нуле;
//    просмотры: best-effort инкремент и NotFound для чужих/скрытых записей.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dealhunt/engagement-service/internal/config"
	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/storage"
)

// repoRootFromThisFile — определяет корень репозитория относительно текущего
// файла тестов: отсюда берутся SQL-миграции независимо от рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает PostgreSQL через testcontainers-go, применяет
// миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting postgres container with image=%q", req.Image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	cfg := &config.Config{
		DB:     config.DBConfig{URL: dsn},
		Limits: config.LimitsConfig{Default: 20, Max: 100, MaxDepth: 10},
	}

	st, err := New(ctx, cfg)
	require.NoError(t, err)

	_, err = st.db.Exec(ctx, readMigration(t, "0001_engagement.up.sql"))
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// seedDiscussion — создаёт обсуждение от имени нового автора.
func seedDiscussion(t *testing.T, st *Storage) (*models.Discussion, models.Actor) {
	t.Helper()

	actor := models.Actor{ID: uuid.New(), Username: "alice"}
	d, err := st.CreateDiscussion(context.Background(), models.Discussion{
		Title:      "Weekend deals",
		Content:    "Share the best deals you found this weekend.",
		AuthorID:   actor.ID,
		AuthorName: actor.Username,
	})
	require.NoError(t, err)
	return d, actor
}

// seedReply — вставляет ответ (parentID == uuid.Nil для верхнего уровня).
func seedReply(t *testing.T, st *Storage, discussionID, parentID uuid.UUID, author models.Actor, content string) *models.Reply {
	t.Helper()

	r, err := st.CreateReply(context.Background(), models.Reply{
		DiscussionID:  discussionID,
		ParentReplyID: parentID,
		AuthorID:      author.ID,
		AuthorName:    author.Username,
		Content:       content,
	})
	require.NoError(t, err)
	return r
}

func TestIntegration_CreateDiscussion_And_ByID_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	d, actor := seedDiscussion(t, st)

	require.Equal(t, models.StatusActive, d.Status)
	require.EqualValues(t, 0, d.LikesCount)
	require.EqualValues(t, 0, d.RepliesCount)
	require.EqualValues(t, 0, d.ViewsCount)
	require.WithinDuration(t, time.Now().UTC(), d.CreatedAt, 5*time.Second)
	require.False(t, d.LastActivityAt.Before(d.CreatedAt))

	got, err := st.DiscussionByID(context.Background(), d.ID, actor.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.Equal(t, d.Title, got.Title)
	require.False(t, got.ViewerHasLiked)
}

func TestIntegration_DiscussionByID_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.DiscussionByID(context.Background(), uuid.New(), uuid.Nil)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_UpdateDiscussion_PartialAndForbidden(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	d, actor := seedDiscussion(t, st)
	title := "Updated weekend deals"

	got, err := st.UpdateDiscussion(context.Background(), actor.ID, d.ID, storage.DiscussionUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, got.Title)
	require.Equal(t, d.Content, got.Content) // content не менялся
	require.True(t, got.UpdatedAt.After(d.UpdatedAt) || got.UpdatedAt.Equal(d.UpdatedAt))

	// чужой актор
	_, err = st.UpdateDiscussion(context.Background(), uuid.New(), d.ID, storage.DiscussionUpdate{Title: &title})
	require.ErrorIs(t, err, storage.ErrForbidden)

	// отсутствующая запись
	_, err = st.UpdateDiscussion(context.Background(), actor.ID, uuid.New(), storage.DiscussionUpdate{Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_DeleteDiscussion_SoftDelete(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)
	seedReply(t, st, d.ID, uuid.Nil, actor, "still here after soft delete")

	// чужой актор
	require.ErrorIs(t, st.DeleteDiscussion(ctx, uuid.New(), d.ID), storage.ErrForbidden)

	require.NoError(t, st.DeleteDiscussion(ctx, actor.ID, d.ID))

	// из читающих запросов обсуждение исчезло
	_, err := st.DiscussionByID(ctx, d.ID, actor.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// повторное удаление — NotFound (уже deleted)
	require.ErrorIs(t, st.DeleteDiscussion(ctx, actor.ID, d.ID), storage.ErrNotFound)

	// фактовые строки не тронуты
	thread, err := st.Thread(ctx, d.ID, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, thread, 1)

	// новые ответы к удалённому обсуждению не принимаются
	_, err = st.CreateReply(ctx, models.Reply{
		DiscussionID: d.ID, AuthorID: actor.ID, AuthorName: actor.Username, Content: "late",
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListDiscussions_PinnedFirstAndPaging(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	first, _ := seedDiscussion(t, st)
	second, _ := seedDiscussion(t, st)
	pinned, _ := seedDiscussion(t, st)

	_, err := st.db.Exec(ctx, `UPDATE discussions SET is_pinned = TRUE WHERE id = $1`, pinned.ID)
	require.NoError(t, err)

	page, err := st.ListDiscussions(ctx, models.ListParams{Sort: models.SortRecent, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	require.Equal(t, pinned.ID, page.Items[0].ID) // закреплённое всегда первое

	// вторая страница
	page, err = st.ListDiscussions(ctx, models.ListParams{Sort: models.SortRecent, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_ = first
	_ = second
}

func TestIntegration_ListDiscussions_PopularSort(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	quiet, _ := seedDiscussion(t, st)
	hot, _ := seedDiscussion(t, st)

	// два лайка перевешивают один ответ: likes_count*2 + replies_count.
	_, err := st.SetLike(ctx, models.TargetDiscussion, hot.ID, uuid.New(), models.ReactionLike)
	require.NoError(t, err)
	_, err = st.SetLike(ctx, models.TargetDiscussion, hot.ID, uuid.New(), models.ReactionLike)
	require.NoError(t, err)

	author := models.Actor{ID: uuid.New(), Username: "bob"}
	seedReply(t, st, quiet.ID, uuid.Nil, author, "lone reply")

	page, err := st.ListDiscussions(ctx, models.ListParams{Sort: models.SortPopular, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, hot.ID, page.Items[0].ID)
}

func TestIntegration_RecordView(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)

	require.NoError(t, st.RecordView(ctx, d.ID))
	require.NoError(t, st.RecordView(ctx, d.ID))

	got, err := st.DiscussionByID(ctx, d.ID, actor.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.ViewsCount)

	require.ErrorIs(t, st.RecordView(ctx, uuid.New()), storage.ErrNotFound)
}

func TestIntegration_CreateReply_HierarchyAndCounters(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)
	bob := models.Actor{ID: uuid.New(), Username: "bob"}

	root := seedReply(t, st, d.ID, uuid.Nil, actor, "top-level reply")
	require.EqualValues(t, 0, root.Level)
	require.Equal(t, models.PathSegment(root.ID), root.Path)
	require.Equal(t, uuid.Nil, root.ParentReplyID)

	child := seedReply(t, st, d.ID, root.ID, bob, "nested reply")
	require.EqualValues(t, 1, child.Level)
	require.Equal(t, models.ChildPath(root.Path, child.ID), child.Path)
	require.Equal(t, root.ID, child.ParentReplyID)

	// replies_count обсуждения считает все строки дерева,
	// child_replies_count родителя — только прямых детей.
	got, err := st.DiscussionByID(ctx, d.ID, uuid.Nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.RepliesCount)
	require.True(t, got.LastActivityAt.After(d.LastActivityAt))

	thread, err := st.Thread(ctx, d.ID, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, root.ID, thread[0].ID)
	require.EqualValues(t, 1, thread[0].ChildRepliesCount)
	require.Equal(t, child.ID, thread[1].ID)
}

func TestIntegration_CreateReply_ParentValidation(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	d, actor := seedDiscussion(t, st)
	other, _ := seedDiscussion(t, st)
	foreign := seedReply(t, st, other.ID, uuid.Nil, actor, "reply in another discussion")

	// несуществующий родитель
	_, err := st.CreateReply(context.Background(), models.Reply{
		DiscussionID: d.ID, ParentReplyID: uuid.New(),
		AuthorID: actor.ID, AuthorName: actor.Username, Content: "orphan",
	})
	require.ErrorIs(t, err, storage.ErrParentNotFound)

	// родитель из другого обсуждения
	_, err = st.CreateReply(context.Background(), models.Reply{
		DiscussionID: d.ID, ParentReplyID: foreign.ID,
		AuthorID: actor.ID, AuthorName: actor.Username, Content: "cross-thread",
	})
	require.ErrorIs(t, err, storage.ErrParentNotFound)
}

func TestIntegration_CreateReply_DepthBound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	// Короткий предел, чтобы не строить цепочку из 11 строк.
	st.cfg.Limits.MaxDepth = 3

	d, actor := seedDiscussion(t, st)

	parent := seedReply(t, st, d.ID, uuid.Nil, actor, "level 0")
	for level := 1; level <= 3; level++ {
		parent = seedReply(t, st, d.ID, parent.ID, actor, fmt.Sprintf("level %d", level))
		require.EqualValues(t, level, parent.Level)
	}

	// level 4 > MaxDepth
	_, err := st.CreateReply(context.Background(), models.Reply{
		DiscussionID: d.ID, ParentReplyID: parent.ID,
		AuthorID: actor.ID, AuthorName: actor.Username, Content: "too deep",
	})
	require.ErrorIs(t, err, storage.ErrMaxDepthExceeded)
}

func TestIntegration_Thread_DepthFirstOrder(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	d, actor := seedDiscussion(t, st)

	// Два корня, у первого — ребёнок и внук: DFS-порядок
	// rootA, childA1, grandA11, rootB независимо от времени вставки.
	rootA := seedReply(t, st, d.ID, uuid.Nil, actor, "root A")
	rootB := seedReply(t, st, d.ID, uuid.Nil, actor, "root B")
	childA1 := seedReply(t, st, d.ID, rootA.ID, actor, "child A1")
	grandA11 := seedReply(t, st, d.ID, childA1.ID, actor, "grand A11")

	thread, err := st.Thread(context.Background(), d.ID, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, thread, 4)

	wantOrder := map[int]uuid.UUID{}
	// Лексический порядок корней задаёт hex их id.
	if rootA.Path < rootB.Path {
		wantOrder = map[int]uuid.UUID{0: rootA.ID, 1: childA1.ID, 2: grandA11.ID, 3: rootB.ID}
	} else {
		wantOrder = map[int]uuid.UUID{0: rootB.ID, 1: rootA.ID, 2: childA1.ID, 3: grandA11.ID}
	}

	for i, want := range wantOrder {
		require.Equal(t, want, thread[i].ID, "position %d", i)
	}
}

func TestIntegration_UpdateReply_AuthorOnly(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)
	r := seedReply(t, st, d.ID, uuid.Nil, actor, "original")
	require.False(t, r.IsEdited)

	got, err := st.UpdateReply(ctx, actor.ID, r.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", got.Content)
	require.True(t, got.IsEdited)
	// иерархия неизменна.
	require.Equal(t, r.Path, got.Path)
	require.Equal(t, r.Level, got.Level)

	_, err = st.UpdateReply(ctx, uuid.New(), r.ID, "hijack")
	require.ErrorIs(t, err, storage.ErrForbidden)

	_, err = st.UpdateReply(ctx, actor.ID, uuid.New(), "ghost")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_DeleteReply_CascadeSubtree(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)

	root := seedReply(t, st, d.ID, uuid.Nil, actor, "root")
	child := seedReply(t, st, d.ID, root.ID, actor, "child")
	grand := seedReply(t, st, d.ID, child.ID, actor, "grandchild")
	sibling := seedReply(t, st, d.ID, uuid.Nil, actor, "unrelated sibling")

	// лайк на внуке должен уйти вместе с поддеревом
	liker := uuid.New()
	_, err := st.SetLike(ctx, models.TargetReply, grand.ID, liker, models.ReactionLike)
	require.NoError(t, err)

	// чужой актор не может удалить
	require.ErrorIs(t, st.DeleteReply(ctx, uuid.New(), child.ID), storage.ErrForbidden)

	// удаление child уносит child+grand (2 строки)
	require.NoError(t, st.DeleteReply(ctx, actor.ID, child.ID))

	thread, err := st.Thread(ctx, d.ID, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, root.ID, thread[0].ID)
	require.EqualValues(t, 0, thread[0].ChildRepliesCount) // декремент у родителя
	require.Equal(t, sibling.ID, thread[1].ID)

	got, err := st.DiscussionByID(ctx, d.ID, uuid.Nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.RepliesCount) // 4 - 2

	// строк лайков не осталось
	var likes int
	require.NoError(t, st.db.QueryRow(ctx, `SELECT count(*) FROM reply_likes`).Scan(&likes))
	require.Zero(t, likes)

	// повторное удаление — NotFound
	require.ErrorIs(t, st.DeleteReply(ctx, actor.ID, child.ID), storage.ErrNotFound)
}

func TestIntegration_SetLike_Discussion_Idempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, _ := seedDiscussion(t, st)
	liker := uuid.New()

	first, err := st.SetLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.True(t, first.Liked)
	require.EqualValues(t, 1, first.LikesCount)

	// повтор — no-op, счётчик не растёт
	second, err := st.SetLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.EqualValues(t, 1, second.LikesCount)

	// инвариант: счётчик == числу фактовых строк
	var rows int
	require.NoError(t, st.db.QueryRow(ctx,
		`SELECT count(*) FROM discussion_likes WHERE discussion_id = $1`, d.ID).Scan(&rows))
	require.Equal(t, 1, rows)

	// viewer_has_liked отражает состояние
	view, err := st.DiscussionByID(ctx, d.ID, liker)
	require.NoError(t, err)
	require.True(t, view.ViewerHasLiked)
	require.True(t, view.LastActivityAt.After(d.LastActivityAt))
}

func TestIntegration_ClearLike_Discussion_IdempotentFloor(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, _ := seedDiscussion(t, st)
	liker := uuid.New()

	// снятие несуществующего лайка — no-op успех
	state, err := st.ClearLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.False(t, state.Liked)
	require.EqualValues(t, 0, state.LikesCount)

	_, err = st.SetLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)

	state, err = st.ClearLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.EqualValues(t, 0, state.LikesCount)

	// повторное снятие не уводит счётчик в минус
	state, err = st.ClearLike(ctx, models.TargetDiscussion, d.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.EqualValues(t, 0, state.LikesCount)
}

func TestIntegration_ReplyLike_SetAndClear(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, actor := seedDiscussion(t, st)
	r := seedReply(t, st, d.ID, uuid.Nil, actor, "like me")
	liker := uuid.New()

	state, err := st.SetLike(ctx, models.TargetReply, r.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.EqualValues(t, 1, state.LikesCount)

	thread, err := st.Thread(ctx, d.ID, liker)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	require.True(t, thread[0].ViewerHasLiked)
	require.EqualValues(t, 1, thread[0].LikesCount)

	state, err = st.ClearLike(ctx, models.TargetReply, r.ID, liker, models.ReactionLike)
	require.NoError(t, err)
	require.EqualValues(t, 0, state.LikesCount)

	// лайк на несуществующую цель
	_, err = st.SetLike(ctx, models.TargetReply, uuid.New(), liker, models.ReactionLike)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_EndToEnd_CounterConservation(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	d, author := seedDiscussion(t, st)

	// три участника: ответы + лайки, затем частичная уборка
	bob := models.Actor{ID: uuid.New(), Username: "bob"}
	carol := models.Actor{ID: uuid.New(), Username: "carol"}

	root := seedReply(t, st, d.ID, uuid.Nil, bob, "bob's take")
	seedReply(t, st, d.ID, root.ID, carol, "carol agrees")

	_, err := st.SetLike(ctx, models.TargetDiscussion, d.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = st.SetLike(ctx, models.TargetDiscussion, d.ID, carol.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = st.SetLike(ctx, models.TargetReply, root.ID, carol.ID, models.ReactionLike)
	require.NoError(t, err)

	require.NoError(t, st.RecordView(ctx, d.ID))

	view, err := st.DiscussionByID(ctx, d.ID, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, view.RepliesCount)
	require.EqualValues(t, 2, view.LikesCount)
	require.EqualValues(t, 1, view.ViewsCount)

	// bob передумал: снял лайк и удалил свою ветку (вместе с ответом carol)
	_, err = st.ClearLike(ctx, models.TargetDiscussion, d.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	require.NoError(t, st.DeleteReply(ctx, bob.ID, root.ID))

	view, err = st.DiscussionByID(ctx, d.ID, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, view.RepliesCount)
	require.EqualValues(t, 1, view.LikesCount)

	// счётчики сходятся с фактовыми строками
	var replies, likes int
	require.NoError(t, st.db.QueryRow(ctx,
		`SELECT count(*) FROM discussion_replies WHERE discussion_id = $1`, d.ID).Scan(&replies))
	require.NoError(t, st.db.QueryRow(ctx,
		`SELECT count(*) FROM discussion_likes WHERE discussion_id = $1`, d.ID).Scan(&likes))
	require.Equal(t, 0, replies)
	require.Equal(t, 1, likes)
}

func TestIntegration_ContextDeadlineExceeded(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	d, actor := seedDiscussion(t, st)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := st.DiscussionByID(ctx, d.ID, actor.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

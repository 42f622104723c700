// postgres предоставляет реализацию storage.Storage на базе PostgreSQL.
//
// Все мутации фактовых строк выполняются в одной транзакции с обновлением
// денормализованных счётчиков: блокировка строки обсуждения/ответа на время
// транзакции сериализует конкурирующие инкременты, а уникальные индексы
// закрывают гонку check-then-act для лайков.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhunt/engagement-service/internal/config"
	"github.com/dealhunt/engagement-service/internal/storage"
)

type Storage struct {
	db  *pgxpool.Pool
	cfg *config.Config
}

// New создает и инициализирует пул соединений к PostgreSQL.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	const op = "storage/postgres/New"

	poolCfg, err := pgxpool.ParseConfig(cfg.DB.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, cfg: cfg}, nil
}

// Close закрывает пул соединений.
// Должен вызываться при остановке приложения.
func (s *Storage) Close() {
	s.db.Close()
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Storage)(nil)

// mapError транслирует низкоуровневые ошибки pgx в сентинелы хранилища:
//   - 23505 (unique_violation)            -> storage.ErrAlreadyExists;
//   - 40001/40P01 (serialization/deadlock) -> storage.ErrConflict;
//   - ошибки соединения/сети               -> storage.ErrUnavailable.
//
// Прочие ошибки возвращаются как есть.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// Ошибки контекста — не сбой хранилища: их нельзя ретраить
	// (context.DeadlineExceeded формально проходит как net.Error).
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return storage.ErrAlreadyExists
		case "40001", "40P01":
			return storage.ErrConflict
		}

		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return storage.ErrUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return storage.ErrUnavailable
	}

	return err
}

// withTx выполняет fn внутри транзакции: commit при nil-ошибке,
// безусловный rollback иначе. Ошибки begin/commit проходят через mapError.
func (s *Storage) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}

	return nil
}

package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres хранит коллекции в таблице kv_collections: одна строка на ключ,
// значение — JSONB, запись заменяет значение целиком. Вариант для серверного
// развёртывания, когда файл bbolt не подходит.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres создаёт подключение к PostgreSQL и проверяет его ping-ом.
func NewPostgres(connString string) (*Postgres, error) {
	const op = "storage.kv.NewPostgres"

	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Postgres{DB: db}, nil
}

// Get возвращает значение ключа или nil, если строки нет.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.kv.Postgres.Get"

	var value []byte
	query := `SELECT value FROM kv_collections WHERE key = $1`
	err := p.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// Put заменяет значение ключа целиком.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	const op = "storage.kv.Postgres.Put"

	query := `INSERT INTO kv_collections (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update выполняет fn над текущим значением ключа внутри транзакции,
// строка ключа блокируется до коммита.
func (p *Postgres) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	const op = "storage.kv.Postgres.Update"

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var old []byte
	query := `SELECT value FROM kv_collections WHERE key = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, key).Scan(&old)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, err)
	}

	updated, err := fn(old)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	upsert := `INSERT INTO kv_collections (key, value) VALUES ($1, $2)
			   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := tx.ExecContext(ctx, upsert, key, updated); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (p *Postgres) Close() error {
	return p.DB.Close()
}

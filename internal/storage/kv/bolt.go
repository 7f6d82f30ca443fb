package kv

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const bucketName = "collections"

// Bolt хранит коллекции во встроенной базе bbolt. Вариант по умолчанию:
// локальный файл, синхронные записи, без внешних сервисов.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt открывает (или создаёт) файл базы по пути path.
func NewBolt(path string) (*Bolt, error) {
	const op = "storage.kv.NewBolt"

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Bolt{db: db}, nil
}

// Get возвращает значение ключа или nil, если ключ отсутствует.
func (b *Bolt) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.kv.Bolt.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if stored != nil {
			value = append([]byte(nil), stored...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// Put заменяет значение ключа целиком.
func (b *Bolt) Put(ctx context.Context, key string, value []byte) error {
	const op = "storage.kv.Bolt.Put"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update выполняет fn над текущим значением ключа и записывает результат
// в той же транзакции bbolt.
func (b *Bolt) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	const op = "storage.kv.Bolt.Update"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		var old []byte
		if stored := bucket.Get([]byte(key)); stored != nil {
			old = append([]byte(nil), stored...)
		}
		updated, err := fn(old)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), updated)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает файл базы.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Package storage хранит фотографии вещдоков. Драйверы: db (таблица photos), fs, s3.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver — идентификатор реализации хранилища.
type Driver string

const (
	DriverDB         Driver = "db"
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

var (
	ErrNotFound = errors.New("photo not found")
	ErrExists   = errors.New("photo already exists")
)

// Info — метаданные сохранённого объекта.
type Info struct {
	Key          string
	ContentType  string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Store — минимальный контракт хранилища фотографий. Ключи не перезаписываются.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
}

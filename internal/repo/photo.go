package repo

import (
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/storage"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// photoRepo — драйвер хранилища фотографий поверх таблицы photos.
type photoRepo struct {
	db *gorm.DB
}

// NewPhotoRepository создаёт хранилище фотографий в БД.
func NewPhotoRepository(db *gorm.DB) storage.Store {
	return &photoRepo{db: db}
}

func (r *photoRepo) Driver() storage.Driver { return storage.DriverDB }

// Put создаёт запись, если её ещё нет. Повторная запись по тому же ключу — ErrExists.
func (r *photoRepo) Put(ctx context.Context, key string, rd io.Reader, contentType string) (storage.Info, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return storage.Info{}, err
	}
	p := &model.Photo{Key: key, ContentType: contentType, Size: int64(len(data)), Data: data}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "photo_key"}},
		DoNothing: true,
	}).Create(p)
	if tx.Error != nil {
		return storage.Info{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return storage.Info{}, fmt.Errorf("%w: %s", storage.ErrExists, key)
	}
	return photoInfo(p), nil
}

func (r *photoRepo) Get(ctx context.Context, key string) (storage.Info, io.ReadCloser, error) {
	var p model.Photo
	if err := r.db.WithContext(ctx).First(&p, "photo_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return storage.Info{}, nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return storage.Info{}, nil, err
	}
	return photoInfo(&p), io.NopCloser(bytes.NewReader(p.Data)), nil
}

func photoInfo(p *model.Photo) storage.Info {
	sum := sha256.Sum256(p.Data)
	return storage.Info{
		Key:          p.Key,
		ContentType:  p.ContentType,
		Size:         p.Size,
		ETag:         hex.EncodeToString(sum[:]),
		LastModified: p.CreatedAt,
	}
}

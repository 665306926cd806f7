package model

import "time"

// Photo — содержимое фотографии вещдока для драйвера хранилища "db".
type Photo struct {
	Key         string `gorm:"primaryKey;column:photo_key"`
	ContentType string
	Size        int64     `gorm:"not null"`
	Data        []byte    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

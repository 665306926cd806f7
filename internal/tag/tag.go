// Package tag выпускает строки бирок для вещдоков и рисует по ним QR-код.
package tag

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	// TokenPrefix — префикс строки на бирке.
	TokenPrefix = "PROP-"
	// ImageSize — сторона PNG в пикселях.
	ImageSize = 256
)

// NewToken возвращает новую уникальную строку бирки.
func NewToken() string {
	return TokenPrefix + uuid.NewString()
}

// IsToken проверяет, похожа ли строка на бирку.
func IsToken(s string) bool {
	if !strings.HasPrefix(s, TokenPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(s, TokenPrefix))
	return err == nil
}

// Render рисует QR-код бирки в PNG. Результат зависит только от token.
func Render(token string) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, ImageSize)
}

// DataURL возвращает PNG бирки в виде data URL для отдачи фронтенду.
func DataURL(token string) (string, error) {
	png, err := Render(token)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

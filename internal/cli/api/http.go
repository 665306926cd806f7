package api

import (
	"EvidenceKeeper/internal/cli/repo"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// CookieName — имя cookie с токеном, которое ставит сервер.
const CookieName = "auth_token"

// Do sends a JSON request. If token is non-empty, it is passed as auth cookie.
// Тело ответа читается целиком и закрывается.
func Do(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Cookie", CookieName+"="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	return Do(context.Background(), http.MethodPost, url, payload, token)
}

// GetJSON — GET без тела.
func GetJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodGet, url, nil, token)
}

// ErrorMessage достаёт поле error из ответа сервера, иначе возвращает тело как есть.
func ErrorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в хранилище токена.
func PersistAuthFromResponse(resp *http.Response, store repo.TokenStore) error {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

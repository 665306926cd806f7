package commands

import (
	"EvidenceKeeper/internal/cli/api"
	"EvidenceKeeper/internal/cli/repo"
	fsrepo "EvidenceKeeper/internal/cli/repo/fs"
	"EvidenceKeeper/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotSignedIn — в файле токена ничего нет.
var ErrNotSignedIn = errors.New("not signed in, run signin first")

func tokenStore(cfg *config.Config) repo.SessionStore {
	return fsrepo.AuthFSStore{Path: cfg.TokenFile}
}

func endpoint(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + "/api/v1" + path
}

// call выполняет авторизованный запрос к API и раскладывает ответ в out.
func call(ctx context.Context, cfg *config.Config, method, path string, payload, out any) error {
	token, err := tokenStore(cfg).Load()
	if err != nil || token == "" {
		return ErrNotSignedIn
	}
	resp, body, err := api.Do(ctx, method, endpoint(cfg, path), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &serverError{status: resp.StatusCode, message: api.ErrorMessage(body), body: body}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// serverError — ответ API с кодом вне 2xx.
type serverError struct {
	status  int
	message string
	body    []byte
}

func (e *serverError) Error() string {
	switch e.status {
	case http.StatusUnauthorized:
		return "session expired or not signed in"
	case http.StatusForbidden:
		var denied struct {
			Possessor string `json:"possessor"`
		}
		if json.Unmarshal(e.body, &denied) == nil && denied.Possessor != "" {
			return fmt.Sprintf("%s (current possessor: %s)", e.message, denied.Possessor)
		}
	}
	return fmt.Sprintf("server status %d: %s", e.status, e.message)
}

func seg(s string) string { return url.PathEscape(s) }

func optional(args []string, i int) *string {
	if len(args) <= i || args[i] == "" {
		return nil
	}
	s := args[i]
	return &s
}

package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) AuthFSStore {
	t.Helper()
	return AuthFSStore{Path: filepath.Join(t.TempDir(), "EvidenceKeeper", "token")}
}

func TestAuthFSStore_SaveLoad_Token_TrimsWhitespace(t *testing.T) {
	st := newStore(t)
	// Сохранение токена
	if err := st.Save("tok-123\n\n"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	f, _ := os.OpenFile(st.Path, os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	tok, err := st.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token not trimmed, got %q", tok)
	}
}

func TestAuthFSStore_Load_TokenMissingOrEmpty(t *testing.T) {
	st := newStore(t)
	// отсутствует файл
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for missing token file")
	}
	// пустой файл
	_ = os.MkdirAll(filepath.Dir(st.Path), 0o700)
	_ = os.WriteFile(st.Path, []byte(""), 0o600)
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for empty token file")
	}
}

func TestAuthFSStore_NoPath(t *testing.T) {
	if err := (AuthFSStore{}).Save("x"); err == nil {
		t.Fatalf("expected error without path")
	}
}

func TestAuthFSStore_Clear(t *testing.T) {
	st := newStore(t)
	if err := st.Clear(); err != nil {
		t.Fatalf("clear missing: %v", err)
	}
	_ = st.Save("tok")
	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := st.Load(); err == nil {
		t.Fatalf("token must be gone")
	}
}

func TestAuthFSStore_SaveLoad_Login_And_Trimming(t *testing.T) {
	st := newStore(t)
	if err := st.SaveLogin("ravi@ps.local\n"); err != nil {
		t.Fatalf("save login: %v", err)
	}
	login, err := st.LoadLogin()
	if err != nil {
		t.Fatalf("load login: %v", err)
	}
	if login != "ravi@ps.local" {
		t.Fatalf("login not trimmed, got %q", login)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(st.Path), "last_login")); err != nil {
		t.Fatalf("last_login must sit next to token: %v", err)
	}
}

func TestAuthFSStore_SaveLogin_EmptyError(t *testing.T) {
	st := newStore(t)
	if err := st.SaveLogin(""); err == nil {
		t.Fatalf("expected error for empty login")
	}
}

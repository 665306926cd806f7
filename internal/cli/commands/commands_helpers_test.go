package commands

import (
	"EvidenceKeeper/internal/config"
	"bytes"
	"path/filepath"
	"testing"
)

// withTempConfig кладёт файл токена во временный каталог,
// чтобы артефакты (токен/логин) создавались в temp.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "EvidenceKeeper", "token"),
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

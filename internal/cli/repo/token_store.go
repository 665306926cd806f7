package repo

// TokenStore хранит JWT сессии сотрудника между запусками ekcli.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	// Clear завершает сессию; отсутствие сохранённого токена не ошибка.
	Clear() error
}

// SessionStore — токен плюс логин последнего входа, который whoami и signout
// показывают без обращения к серверу.
type SessionStore interface {
	TokenStore
	SaveLogin(login string) error
	LoadLogin() (string, error)
}

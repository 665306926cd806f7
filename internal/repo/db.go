package repo

import (
	"EvidenceKeeper/internal/model"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var (
	// ErrDuplicate — нарушение уникального индекса (номер дела, бирка, акт распоряжения).
	ErrDuplicate = errors.New("duplicate record")
	// ErrCaseNumberTaken — выданный счётчиком номер дела уже занят.
	ErrCaseNumberTaken = fmt.Errorf("%w: case number", ErrDuplicate)
	// ErrConflict — запись в неподходящем состоянии для операции.
	ErrConflict = errors.New("conflicting state")
)

// InitDB открывает БД по строке подключения и применяет миграции.
// Пустая строка или префикс sqlite:/file: — локальная SQLite (modernc), иначе PostgreSQL.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// sqliteLocking — транзакции берут блокировку записи сразу (BEGIN IMMEDIATE) и ждут
// друг друга, а не падают с SQLITE_BUSY при выдаче номера дела.
const sqliteLocking = "_txlock=immediate&_pragma=busy_timeout(5000)"

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case dsn == "":
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:evidence.db?" + sqliteLocking}
	case strings.HasPrefix(dsn, "sqlite:"):
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: strings.TrimPrefix(dsn, "sqlite:")}
	case strings.HasPrefix(dsn, "file:"):
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	default:
		return postgres.Open(dsn)
	}
}

// Migrate создаёт/обновляет схему для всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Case{},
		&model.CaseCounter{},
		&model.Property{},
		&model.CustodyLog{},
		&model.Disposal{},
		&model.ScanLog{},
		&model.Photo{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// isUniqueViolation распознаёт нарушение уникальности для postgres и modernc sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// validID отсекает идентификаторы, которые postgres не примет в колонку uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

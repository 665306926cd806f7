package repo

import (
	"EvidenceKeeper/internal/model"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormatCaseNumber собирает номер дела вида FIR-2026-007.
func FormatCaseNumber(year int, seq int64) string {
	return fmt.Sprintf("FIR-%d-%03d", year, seq)
}

// ParseCaseSequence достаёт порядковый номер из последнего сегмента после '-'.
func ParseCaseSequence(number string) (int64, bool) {
	parts := strings.Split(number, "-")
	n, err := strconv.ParseInt(strings.TrimSpace(parts[len(parts)-1]), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// nextCaseSequence атомарно увеличивает счётчик года и возвращает новое значение.
// Вызывается только внутри транзакции регистрации дела: UPDATE берёт блокировку строки,
// поэтому параллельные регистрации одного года выстраиваются в очередь.
func nextCaseSequence(tx *gorm.DB, year int) (int64, error) {
	var counter model.CaseCounter
	res := tx.Limit(1).Find(&counter, "crime_year = ?", year)
	if res.Error != nil {
		return 0, fmt.Errorf("load counter %d: %w", year, res.Error)
	}
	if res.RowsAffected == 0 {
		seed, err := seedCaseSequence(tx, year)
		if err != nil {
			return 0, err
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.CaseCounter{CrimeYear: year, LastSeq: seed}).Error
		if err != nil {
			return 0, fmt.Errorf("create counter %d: %w", year, err)
		}
	}

	upd := tx.Model(&model.CaseCounter{}).
		Where("crime_year = ?", year).
		Update("last_seq", gorm.Expr("last_seq + ?", 1))
	if upd.Error != nil {
		return 0, fmt.Errorf("increment counter %d: %w", year, upd.Error)
	}
	if upd.RowsAffected != 1 {
		return 0, fmt.Errorf("increment counter %d: %d rows affected", year, upd.RowsAffected)
	}

	if err := tx.First(&counter, "crime_year = ?", year).Error; err != nil {
		return 0, fmt.Errorf("read counter %d: %w", year, err)
	}
	return counter.LastSeq, nil
}

// seedCaseSequence — стартовое значение счётчика для года, где дела заведены до появления
// счётчика: номер последнего созданного дела, либо 0.
func seedCaseSequence(tx *gorm.DB, year int) (int64, error) {
	var last model.Case
	res := tx.Select("crime_number").
		Where("crime_year = ?", year).
		Order("created_at DESC").
		Limit(1).
		Find(&last)
	if res.Error != nil {
		return 0, fmt.Errorf("find last case %d: %w", year, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	if n, ok := ParseCaseSequence(last.CrimeNumber); ok {
		return n, nil
	}
	return 0, nil
}

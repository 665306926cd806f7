package repo

import (
	"EvidenceKeeper/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DisposalRepository — акты окончательного распоряжения.
type DisposalRepository interface {
	GetByPropertyID(ctx context.Context, propertyID string) (*model.Disposal, error)
	// Dispose в одной транзакции создаёт акт, переводит вещдок в DISPOSED и закрывает дело,
	// если в нём не осталось вещдоков на хранении. Возвращает true, если дело закрыто.
	Dispose(ctx context.Context, d *model.Disposal) (bool, error)
}

type disposalRepo struct {
	db *gorm.DB
}

// NewDisposalRepository создаёт реализацию репозитория для Disposal.
func NewDisposalRepository(db *gorm.DB) DisposalRepository {
	return &disposalRepo{db: db}
}

func (r *disposalRepo) GetByPropertyID(ctx context.Context, propertyID string) (*model.Disposal, error) {
	var d model.Disposal
	if err := r.db.WithContext(ctx).First(&d, "property_id = ?", propertyID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *disposalRepo) Dispose(ctx context.Context, d *model.Disposal) (bool, error) {
	caseClosed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Property
		if err := tx.Select("id", "case_id").First(&p, "id = ?", d.PropertyID).Error; err != nil {
			return err
		}

		if err := tx.Create(d).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: disposal for property %s", ErrDuplicate, d.PropertyID)
			}
			return err
		}

		// условное обновление: второй параллельный акт не пройдёт
		res := tx.Model(&model.Property{}).
			Where("id = ? AND status = ?", d.PropertyID, model.PropertyInCustody).
			Update("status", model.PropertyDisposed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: property %s is not in custody", ErrConflict, d.PropertyID)
		}

		var remaining int64
		err := tx.Model(&model.Property{}).
			Where("case_id = ? AND status = ?", p.CaseID, model.PropertyInCustody).
			Count(&remaining).Error
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		if err := tx.Model(&model.Case{}).
			Where("id = ?", p.CaseID).
			Update("status", model.CaseStatusDisposed).Error; err != nil {
			return err
		}
		caseClosed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return caseClosed, nil
}

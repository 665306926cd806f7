package repo

import (
	"EvidenceKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// CustodyRepository — журнал передачи вещдоков.
type CustodyRepository interface {
	// LatestLog возвращает последнюю передачу или nil, если передач не было.
	LatestLog(ctx context.Context, propertyID string) (*model.CustodyLog, error)
	ListLogs(ctx context.Context, propertyID string) ([]model.CustodyLog, error)
	// Transfer записывает передачу и меняет место хранения в одной транзакции.
	Transfer(ctx context.Context, log *model.CustodyLog, newLocation string) error
}

type custodyRepo struct {
	db *gorm.DB
}

// NewCustodyRepository создаёт реализацию репозитория журнала передачи.
func NewCustodyRepository(db *gorm.DB) CustodyRepository {
	return &custodyRepo{db: db}
}

func (r *custodyRepo) LatestLog(ctx context.Context, propertyID string) (*model.CustodyLog, error) {
	var logs []model.CustodyLog
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("moved_at DESC").
		Limit(1).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

func (r *custodyRepo) ListLogs(ctx context.Context, propertyID string) ([]model.CustodyLog, error) {
	var logs []model.CustodyLog
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("moved_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *custodyRepo) Transfer(ctx context.Context, log *model.CustodyLog, newLocation string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Property{}).
			Where("id = ?", log.PropertyID).
			Update("location", newLocation)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package repo

import (
	"EvidenceKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// PropertyRepository — доступ к вещдокам и журналу сканирований.
type PropertyRepository interface {
	// GetByID возвращает вещдок вместе с делом.
	GetByID(ctx context.Context, id string) (*model.Property, error)
	// GetByToken возвращает вещдок по строке бирки вместе с делом и журналом (новые сверху).
	GetByToken(ctx context.Context, token string) (*model.Property, error)
	Update(ctx context.Context, id string, updates map[string]any) (*model.Property, error)
	ListByOwner(ctx context.Context, userID int64) ([]model.Property, error)
	CountByOwner(ctx context.Context, userID int64, status model.PropertyStatus) (int64, error)
	CountByCategory(ctx context.Context, userID int64) (map[model.Category]int64, error)
	LogScan(ctx context.Context, scan *model.ScanLog) error
}

type propertyRepo struct {
	db *gorm.DB
}

// NewPropertyRepository создаёт реализацию репозитория для Property.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var p model.Property
	if err := r.db.WithContext(ctx).Preload("Case").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepo) GetByToken(ctx context.Context, token string) (*model.Property, error) {
	var p model.Property
	err := r.db.WithContext(ctx).
		Preload("Case").
		Preload("CustodyLogs", func(db *gorm.DB) *gorm.DB { return db.Order("moved_at DESC") }).
		Preload("Disposal").
		First(&p, "qr_string = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Property, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Property{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *propertyRepo) ownedCases(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Case{}).Select("id").Where("user_id = ?", userID)
}

func (r *propertyRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Property, error) {
	var out []model.Property
	err := r.db.WithContext(ctx).
		Preload("Case", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "crime_number", "police_station")
		}).
		Preload("Disposal").
		Where("case_id IN (?)", r.ownedCases(ctx, userID)).
		// IN_CUSTODY > DISPOSED, поэтому DESC поднимает находящиеся на хранении
		Order("status DESC").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *propertyRepo) CountByOwner(ctx context.Context, userID int64, status model.PropertyStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Property{}).Where("case_id IN (?)", r.ownedCases(ctx, userID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *propertyRepo) CountByCategory(ctx context.Context, userID int64) (map[model.Category]int64, error) {
	var rows []categoryCount
	err := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Select("category, COUNT(*) AS total").
		Where("case_id IN (?)", r.ownedCases(ctx, userID)).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.Category]int64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Total
	}
	return out, nil
}

type categoryCount struct {
	Category model.Category
	Total    int64
}

func (r *propertyRepo) LogScan(ctx context.Context, scan *model.ScanLog) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

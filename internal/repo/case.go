package repo

import (
	"EvidenceKeeper/internal/model"
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseRow — строка списка дел с числом вещдоков.
type CaseRow struct {
	ID            string           `json:"id"`
	PoliceStation string           `json:"policeStation"`
	IOName        string           `gorm:"column:io_name" json:"ioName"`
	IOID          string           `gorm:"column:io_id" json:"ioId"`
	CrimeNumber   string           `json:"crimeNumber"`
	CrimeYear     int              `json:"crimeYear"`
	FIRDate       time.Time        `gorm:"column:fir_date" json:"firDate"`
	SeizureDate   time.Time        `json:"seizureDate"`
	ActLaw        string           `json:"actLaw"`
	SectionLaw    string           `json:"sectionLaw"`
	Status        model.CaseStatus `json:"status"`
	UserID        int64            `json:"userId"`
	CreatedAt     time.Time        `json:"createdAt"`
	PropertyCount int64            `json:"propertyCount"`
}

// CaseRepository — доступ к делам.
type CaseRepository interface {
	// CreateWithProperties в одной транзакции выдаёт номер дела, создаёт дело и его вещдоки.
	CreateWithProperties(ctx context.Context, c *model.Case) error
	GetByID(ctx context.Context, id string) (*model.Case, error)
	// GetDetailed ищет по id или по номеру FIR, подгружает вещдоки, журнал передач и акты.
	GetDetailed(ctx context.Context, idOrNumber string) (*model.Case, error)
	ListByUser(ctx context.Context, userID int64) ([]CaseRow, error)
	Search(ctx context.Context, userID int64, q string) ([]CaseRow, error)
	Update(ctx context.Context, id string, updates map[string]any) (*model.Case, error)
}

type caseRepo struct {
	db *gorm.DB
}

// NewCaseRepository создаёт реализацию репозитория для Case.
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepo{db: db}
}

func (r *caseRepo) CreateWithProperties(ctx context.Context, c *model.Case) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextCaseSequence(tx, c.CrimeYear)
		if err != nil {
			return err
		}
		c.CrimeNumber = FormatCaseNumber(c.CrimeYear, seq)

		props := c.Properties
		c.Properties = nil
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w %s", ErrCaseNumberTaken, c.CrimeNumber)
			}
			return err
		}
		if len(props) > 0 {
			for i := range props {
				props[i].CaseID = c.ID
			}
			if err := tx.Omit(clause.Associations).Create(&props).Error; err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: property tag", ErrDuplicate)
				}
				return err
			}
		}
		c.Properties = props
		return nil
	})
}

func (r *caseRepo) GetByID(ctx context.Context, id string) (*model.Case, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var c model.Case
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepo) GetDetailed(ctx context.Context, idOrNumber string) (*model.Case, error) {
	q := r.db.WithContext(ctx).
		Preload("Properties", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Properties.CustodyLogs", func(db *gorm.DB) *gorm.DB { return db.Order("moved_at DESC") }).
		Preload("Properties.Disposal").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "rank")
		})
	if validID(idOrNumber) {
		q = q.Where("id = ?", idOrNumber)
	} else {
		q = q.Where("crime_number = ?", idOrNumber)
	}
	var c model.Case
	if err := q.First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

const caseRowSelect = "cases.*, (SELECT COUNT(*) FROM properties WHERE properties.case_id = cases.id) AS property_count"

func (r *caseRepo) ListByUser(ctx context.Context, userID int64) ([]CaseRow, error) {
	var rows []CaseRow
	err := r.db.WithContext(ctx).
		Model(&model.Case{}).
		Select(caseRowSelect).
		Where("cases.user_id = ?", userID).
		Order("cases.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *caseRepo) Search(ctx context.Context, userID int64, q string) ([]CaseRow, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var rows []CaseRow
	err := r.db.WithContext(ctx).
		Model(&model.Case{}).
		Select(caseRowSelect).
		Where("cases.user_id = ?", userID).
		Where("(LOWER(cases.crime_number) LIKE ? OR LOWER(cases.io_name) LIKE ?)", pattern, pattern).
		Order("cases.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *caseRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Case, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Case{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

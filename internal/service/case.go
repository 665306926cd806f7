package service

import (
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"EvidenceKeeper/internal/tag"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PropertyInput — один вещдок в запросе на регистрацию дела.
type PropertyInput struct {
	Category    model.Category    `json:"category" validate:"required,oneof=ELECTRONICS WEAPON VEHICLE CASH NARCOTICS DOCUMENTS OTHER"`
	BelongingTo model.BelongingTo `json:"belongingTo" validate:"required,oneof=ACCUSED COMPLAINANT VICTIM UNKNOWN"`
	Nature      model.Nature      `json:"nature" validate:"required,oneof=RECOVERED SEIZED ABANDONED"`
	Quantity    int               `json:"quantity" validate:"min=1"`
	Location    string            `json:"location" validate:"required,notblank"`
	Description string            `json:"description" validate:"required"`
	PhotoURL    *string           `json:"photoUrl" validate:"omitempty,url"`
}

// RegisterCaseInput — дело и его вещдоки. Номер дела выдаётся сервером.
type RegisterCaseInput struct {
	PoliceStation string          `json:"policeStation" validate:"required,notblank"`
	IOName        string          `json:"ioName" validate:"required,notblank"`
	IOID          string          `json:"ioId" validate:"required,notblank"`
	CrimeYear     int             `json:"crimeYear" validate:"min=1900,max=9999"`
	FIRDate       time.Time       `json:"firDate" validate:"required"`
	SeizureDate   time.Time       `json:"seizureDate" validate:"required"`
	ActLaw        string          `json:"actLaw" validate:"required"`
	SectionLaw    string          `json:"sectionLaw" validate:"required"`
	Properties    []PropertyInput `json:"properties" validate:"dive"`
}

// UpdateCaseInput — правка реквизитов дела. Номер и год не меняются.
type UpdateCaseInput struct {
	PoliceStation *string    `json:"policeStation" validate:"omitempty,min=1"`
	IOName        *string    `json:"ioName" validate:"omitempty,min=1"`
	IOID          *string    `json:"ioId" validate:"omitempty,min=1"`
	FIRDate       *time.Time `json:"firDate"`
	SeizureDate   *time.Time `json:"seizureDate"`
	ActLaw        *string    `json:"actLaw" validate:"omitempty,min=1"`
	SectionLaw    *string    `json:"sectionLaw" validate:"omitempty,min=1"`
}

// DashboardStats — сводка для главной страницы сотрудника.
type DashboardStats struct {
	TotalCases      int64  `json:"totalCases"`
	TotalItems      int64  `json:"totalItems"`
	PendingDisposal int64  `json:"pendingDisposal"`
	StationID       string `json:"stationId"`
}

// AnalyticsStats — количество вещдоков по категориям.
type AnalyticsStats struct {
	Categories map[model.Category]int64 `json:"categories"`
}

// CaseService — регистрация дел и выборки по ним.
type CaseService struct {
	cases   repo.CaseRepository
	props   repo.PropertyRepository
	users   repo.UserRepository
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewCaseService(cases repo.CaseRepository, props repo.PropertyRepository, users repo.UserRepository,
	log *zap.SugaredLogger, m *metrics.Metrics) *CaseService {
	return &CaseService{cases: cases, props: props, users: users, log: log, metrics: m}
}

// Register проверяет весь запрос до записи, выпускает бирки и создаёт дело с вещдоками одной транзакцией.
func (s *CaseService) Register(ctx context.Context, userID int64, in RegisterCaseInput) (*model.Case, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	c := &model.Case{
		PoliceStation: strings.TrimSpace(in.PoliceStation),
		IOName:        strings.TrimSpace(in.IOName),
		IOID:          strings.TrimSpace(in.IOID),
		CrimeYear:     in.CrimeYear,
		FIRDate:       in.FIRDate.UTC(),
		SeizureDate:   in.SeizureDate.UTC(),
		ActLaw:        in.ActLaw,
		SectionLaw:    in.SectionLaw,
		UserID:        userID,
	}
	for i, p := range in.Properties {
		token := tag.NewToken()
		img, err := tag.DataURL(token)
		if err != nil {
			return nil, fmt.Errorf("render tag for properties[%d]: %w", i, err)
		}
		c.Properties = append(c.Properties, model.Property{
			Category:    p.Category,
			BelongingTo: p.BelongingTo,
			Nature:      p.Nature,
			Quantity:    p.Quantity,
			Location:    strings.TrimSpace(p.Location),
			Description: p.Description,
			PhotoURL:    p.PhotoURL,
			QRString:    token,
			QRCodeImage: img,
		})
	}

	if err := s.cases.CreateWithProperties(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrCaseNumberTaken):
			s.log.Warnw("case number collided", "user_id", userID, "crime_number", c.CrimeNumber, "err", err)
			return nil, &CaseNumberTakenError{Number: c.CrimeNumber}
		case errors.Is(err, repo.ErrDuplicate):
			s.log.Warnw("case registration collided", "user_id", userID, "crime_year", in.CrimeYear, "err", err)
			return nil, ErrDuplicateToken
		}
		return nil, err
	}
	s.metrics.CasesRegistered.Inc()
	s.log.Infow("case registered", "case_id", c.ID, "crime_number", c.CrimeNumber, "properties", len(c.Properties))
	return c, nil
}

// Get ищет дело по id или по номеру FIR.
func (s *CaseService) Get(ctx context.Context, idOrNumber string) (*model.Case, error) {
	c, err := s.cases.GetDetailed(ctx, strings.TrimSpace(idOrNumber))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CaseService) ListMine(ctx context.Context, userID int64) ([]repo.CaseRow, error) {
	rows, err := s.cases.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repo.CaseRow{}
	}
	return rows, nil
}

// Search ищет по номеру дела или имени следователя без учёта регистра.
func (s *CaseService) Search(ctx context.Context, userID int64, q string) ([]repo.CaseRow, error) {
	if strings.TrimSpace(q) == "" {
		return nil, invalidField("q", "required")
	}
	rows, err := s.cases.Search(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repo.CaseRow{}
	}
	return rows, nil
}

// Update правит дело. Разрешено создателю дела и администратору.
func (s *CaseService) Update(ctx context.Context, userID int64, id string, in UpdateCaseInput) (*model.Case, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil && !repo.IsNotFound(err) {
			return nil, err
		}
		if !user.IsAdmin() {
			return nil, ErrForbidden
		}
	}

	updates := map[string]any{}
	setString(updates, "police_station", in.PoliceStation)
	setString(updates, "io_name", in.IOName)
	setString(updates, "io_id", in.IOID)
	setString(updates, "act_law", in.ActLaw)
	setString(updates, "section_law", in.SectionLaw)
	if in.FIRDate != nil {
		updates["fir_date"] = in.FIRDate.UTC()
	}
	if in.SeizureDate != nil {
		updates["seizure_date"] = in.SeizureDate.UTC()
	}
	updated, err := s.cases.Update(ctx, id, updates)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.log.Infow("case updated", "case_id", id, "user_id", userID, "fields", len(updates))
	return updated, nil
}

func (s *CaseService) DashboardStats(ctx context.Context, userID int64) (DashboardStats, error) {
	var out DashboardStats
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return out, ErrNotFound
		}
		return out, err
	}
	out.StationID = user.StationID

	if out.TotalCases, err = s.users.CountCases(ctx, userID); err != nil {
		return out, err
	}
	if out.TotalItems, err = s.props.CountByOwner(ctx, userID, model.PropertyInCustody); err != nil {
		return out, err
	}
	// всё, что ещё на хранении, ждёт распоряжения
	out.PendingDisposal = out.TotalItems
	return out, nil
}

func (s *CaseService) AnalyticsStats(ctx context.Context, userID int64) (AnalyticsStats, error) {
	counts, err := s.props.CountByCategory(ctx, userID)
	if err != nil {
		return AnalyticsStats{}, err
	}
	return AnalyticsStats{Categories: counts}, nil
}

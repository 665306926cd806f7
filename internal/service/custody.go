package service

import (
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"context"
	"strings"

	"go.uber.org/zap"
)

// TransferInput — передача вещдока другому сотруднику.
type TransferInput struct {
	ToOfficer   string  `json:"toOfficer" validate:"required,notblank"`
	Purpose     string  `json:"purpose" validate:"required,notblank"`
	Remarks     *string `json:"remarks"`
	NewLocation string  `json:"newLocation" validate:"required,notblank"`
}

// CustodyHistory — журнал передач (новые сверху) и текущий держатель.
type CustodyHistory struct {
	PropertyID       string             `json:"propertyId"`
	CurrentPossessor string             `json:"currentPossessor"`
	Location         string             `json:"location"`
	Logs             []model.CustodyLog `json:"logs"`
}

// CustodyService — цепочка хранения вещдоков.
type CustodyService struct {
	props   repo.PropertyRepository
	custody repo.CustodyRepository
	users   repo.UserRepository
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewCustodyService(props repo.PropertyRepository, custody repo.CustodyRepository, users repo.UserRepository,
	log *zap.SugaredLogger, m *metrics.Metrics) *CustodyService {
	return &CustodyService{props: props, custody: custody, users: users, log: log, metrics: m}
}

// CurrentPossessor — получатель последней передачи, а до первой передачи следователь по делу.
func CurrentPossessor(p *model.Property, latest *model.CustodyLog) string {
	if latest != nil {
		return latest.ToOfficer
	}
	if p.Case != nil {
		return p.Case.IOName
	}
	return ""
}

// samePerson сравнивает имена без учёта регистра и крайних пробелов.
func samePerson(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Transfer передаёт вещдок. Право есть у текущего держателя и у создателя дела.
func (s *CustodyService) Transfer(ctx context.Context, userID int64, propertyID string, in TransferInput) (*model.CustodyLog, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	latest, err := s.custody.LatestLog(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	possessor := CurrentPossessor(p, latest)

	isOwner := p.Case != nil && p.Case.UserID == userID
	if !isOwner {
		officer, err := s.users.GetByID(ctx, userID)
		if err != nil && !repo.IsNotFound(err) {
			return nil, err
		}
		if officer == nil || !samePerson(officer.FullName(), possessor) {
			s.metrics.TransferDenied.Inc()
			s.log.Warnw("custody transfer denied", "property_id", propertyID, "user_id", userID, "possessor", possessor)
			return nil, &NotPossessorError{Possessor: possessor}
		}
	}

	entry := &model.CustodyLog{
		PropertyID:  propertyID,
		FromOfficer: possessor,
		ToOfficer:   strings.TrimSpace(in.ToOfficer),
		Purpose:     in.Purpose,
		Remarks:     in.Remarks,
		MovedBy:     userID,
	}
	if err := s.custody.Transfer(ctx, entry, strings.TrimSpace(in.NewLocation)); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.metrics.CustodyTransfers.Inc()
	s.log.Infow("custody transferred", "property_id", propertyID, "from", entry.FromOfficer, "to", entry.ToOfficer)
	return entry, nil
}

func (s *CustodyService) History(ctx context.Context, propertyID string) (*CustodyHistory, error) {
	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	logs, err := s.custody.ListLogs(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	var latest *model.CustodyLog
	if len(logs) > 0 {
		latest = &logs[0]
	}
	if logs == nil {
		logs = []model.CustodyLog{}
	}
	return &CustodyHistory{
		PropertyID:       p.ID,
		CurrentPossessor: CurrentPossessor(p, latest),
		Location:         p.Location,
		Logs:             logs,
	}, nil
}

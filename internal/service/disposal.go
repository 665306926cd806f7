package service

import (
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DisposeInput — акт окончательного распоряжения вещдоком.
type DisposeInput struct {
	Type           model.DisposalType `json:"type" validate:"required,oneof=AUCTION DESTROYED RETURNED TRANSFERRED"`
	CourtOrderRef  string             `json:"courtOrderRef" validate:"required"`
	DateOfDisposal string             `json:"dateOfDisposal" validate:"required"`
	Remarks        *string            `json:"remarks"`
}

// DisposalResult — созданный акт и признак закрытия дела.
type DisposalResult struct {
	Disposal   *model.Disposal `json:"disposal"`
	CaseClosed bool            `json:"caseClosed"`
}

// DisposalService — распоряжение вещдоками и закрытие дел.
type DisposalService struct {
	props     repo.PropertyRepository
	disposals repo.DisposalRepository
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics
}

func NewDisposalService(props repo.PropertyRepository, disposals repo.DisposalRepository,
	log *zap.SugaredLogger, m *metrics.Metrics) *DisposalService {
	return &DisposalService{props: props, disposals: disposals, log: log, metrics: m}
}

// parseDisposalDate принимает RFC3339 или YYYY-MM-DD.
func parseDisposalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, invalidField("dateOfDisposal", "date")
	}
	return t, nil
}

// Dispose проверяет предусловия, затем одной транзакцией пишет акт, меняет статус вещдока
// и закрывает дело, если на хранении по нему ничего не осталось.
func (s *DisposalService) Dispose(ctx context.Context, userID int64, propertyID string, in DisposeInput) (*DisposalResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	disposedAt, err := parseDisposalDate(in.DateOfDisposal)
	if err != nil {
		return nil, err
	}

	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status == model.PropertyDisposed {
		return nil, ErrAlreadyDisposed
	}
	if _, err := s.disposals.GetByPropertyID(ctx, propertyID); err == nil {
		return nil, ErrDisposalExists
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	d := &model.Disposal{
		PropertyID:    propertyID,
		Type:          in.Type,
		CourtOrderRef: strings.TrimSpace(in.CourtOrderRef),
		DisposedAt:    disposedAt,
		Remarks:       in.Remarks,
		DisposedBy:    userID,
	}
	closed, err := s.disposals.Dispose(ctx, d)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrDisposalExists
	case errors.Is(err, repo.ErrConflict):
		return nil, ErrAlreadyDisposed
	case repo.IsNotFound(err):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	s.metrics.Disposals.WithLabelValues(string(in.Type)).Inc()
	if closed {
		s.metrics.CasesClosed.Inc()
	}
	s.log.Infow("property disposed", "property_id", propertyID, "type", in.Type, "case_id", p.CaseID, "case_closed", closed)
	return &DisposalResult{Disposal: d, CaseClosed: closed}, nil
}

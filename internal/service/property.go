package service

import (
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"EvidenceKeeper/internal/storage"
	"EvidenceKeeper/internal/tag"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdatePropertyInput — частичная правка вещдока по бирке.
type UpdatePropertyInput struct {
	Category    *model.Category    `json:"category" validate:"omitempty,oneof=ELECTRONICS WEAPON VEHICLE CASH NARCOTICS DOCUMENTS OTHER"`
	BelongingTo *model.BelongingTo `json:"belongingTo" validate:"omitempty,oneof=ACCUSED COMPLAINANT VICTIM UNKNOWN"`
	Nature      *model.Nature      `json:"nature" validate:"omitempty,oneof=RECOVERED SEIZED ABANDONED"`
	Quantity    *int               `json:"quantity" validate:"omitempty,min=1"`
	Location    *string            `json:"location" validate:"omitempty,min=1"`
	Description *string            `json:"description" validate:"omitempty,min=1"`
	PhotoURL    *string            `json:"photoUrl" validate:"omitempty,url"`
}

// PropertyService — сканирование бирок, правка и фотографии вещдоков.
type PropertyService struct {
	props   repo.PropertyRepository
	photos  storage.Store
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewPropertyService(props repo.PropertyRepository, photos storage.Store,
	log *zap.SugaredLogger, m *metrics.Metrics) *PropertyService {
	return &PropertyService{props: props, photos: photos, log: log, metrics: m}
}

// Scan находит вещдок по бирке и отмечает сканирование в журнале.
func (s *PropertyService) Scan(ctx context.Context, userID int64, token string) (*model.Property, error) {
	token = strings.TrimSpace(token)
	if !tag.IsToken(token) {
		return nil, fmt.Errorf("%w: invalid QR code", ErrNotFound)
	}
	p, err := s.props.GetByToken(ctx, token)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: invalid QR code", ErrNotFound)
		}
		return nil, err
	}
	if err := s.props.LogScan(ctx, &model.ScanLog{UserID: userID, PropertyID: p.ID}); err != nil {
		return nil, err
	}
	s.metrics.Scans.Inc()
	return p, nil
}

// UpdateByToken меняет данные вещдока. Разрешено только создателю дела.
func (s *PropertyService) UpdateByToken(ctx context.Context, userID int64, token string, in UpdatePropertyInput) (*model.Property, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.props.GetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Case == nil || p.Case.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.BelongingTo != nil {
		updates["belonging_to"] = *in.BelongingTo
	}
	if in.Nature != nil {
		updates["nature"] = *in.Nature
	}
	if in.Quantity != nil {
		updates["quantity"] = *in.Quantity
	}
	setString(updates, "location", in.Location)
	setString(updates, "description", in.Description)
	setString(updates, "photo_url", in.PhotoURL)

	updated, err := s.props.Update(ctx, p.ID, updates)
	if err != nil {
		return nil, err
	}
	if err := s.props.LogScan(ctx, &model.ScanLog{UserID: userID, PropertyID: p.ID}); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListMine — вещдоки по делам сотрудника, находящиеся на хранении сверху.
func (s *PropertyService) ListMine(ctx context.Context, userID int64) ([]model.Property, error) {
	list, err := s.props.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Property{}
	}
	return list, nil
}

// TagPNG рисует бирку вещдока для печати.
func (s *PropertyService) TagPNG(ctx context.Context, propertyID string) ([]byte, error) {
	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag.Render(p.QRString)
}

// UploadPhoto сохраняет фотографию вещдока под новым ключом и привязывает её к вещдоку.
func (s *PropertyService) UploadPhoto(ctx context.Context, userID int64, propertyID string, r io.Reader, contentType string) (*model.Property, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, invalidField("photo", "image")
	}
	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Case == nil || p.Case.UserID != userID {
		return nil, ErrForbidden
	}

	key := fmt.Sprintf("properties/%s/%s", p.ID, uuid.NewString())
	info, err := s.photos.Put(ctx, key, r, contentType)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("/api/v1/case/property/%s/photo", p.ID)
	updated, err := s.props.Update(ctx, p.ID, map[string]any{"photo_key": info.Key, "photo_url": url})
	if err != nil {
		return nil, err
	}
	s.log.Infow("photo stored", "property_id", p.ID, "driver", s.photos.Driver(), "size", info.Size)
	return updated, nil
}

// Photo открывает фотографию вещдока. Читатель закрывает вызывающий.
func (s *PropertyService) Photo(ctx context.Context, propertyID string) (storage.Info, io.ReadCloser, error) {
	p, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if repo.IsNotFound(err) {
			return storage.Info{}, nil, ErrNotFound
		}
		return storage.Info{}, nil, err
	}
	if p.PhotoKey == nil || *p.PhotoKey == "" {
		return storage.Info{}, nil, fmt.Errorf("%w: no photo", ErrNotFound)
	}
	info, rc, err := s.photos.Get(ctx, *p.PhotoKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Info{}, nil, ErrNotFound
		}
		return storage.Info{}, nil, err
	}
	return info, rc, nil
}

package repo

import (
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/storage"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	cases := NewCaseRepository(db)
	r := NewPropertyRepository(db)
	ctx := context.Background()

	c := newCase(1, 2026, "PROP-p1", "PROP-p2")
	c.Properties[1].Category = model.CategoryWeapon
	require.NoError(t, cases.CreateWithProperties(ctx, c))
	require.NoError(t, cases.CreateWithProperties(ctx, newCase(2, 2026, "PROP-other")))

	p, err := r.GetByToken(ctx, "PROP-p1")
	require.NoError(t, err)
	require.NotNil(t, p.Case)
	assert.Equal(t, c.CrimeNumber, p.Case.CrimeNumber)
	assert.Equal(t, model.PropertyInCustody, p.Status)

	_, err = r.GetByToken(ctx, "PROP-missing")
	assert.True(t, IsNotFound(err))

	byID, err := r.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "PROP-p1", byID.QRString)

	upd, err := r.Update(ctx, p.ID, map[string]any{"description": "Laptop"})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", upd.Description)

	list, err := r.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := r.CountByOwner(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	byCat, err := r.CountByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byCat[model.CategoryElectronics])
	assert.Equal(t, int64(1), byCat[model.CategoryWeapon])

	require.NoError(t, r.LogScan(ctx, &model.ScanLog{UserID: 1, PropertyID: p.ID}))
	var scans int64
	require.NoError(t, db.Model(&model.ScanLog{}).Count(&scans).Error)
	assert.Equal(t, int64(1), scans)
}

func TestCustodyRepository_Transfer(t *testing.T) {
	db := newTestDB(t)
	cases := NewCaseRepository(db)
	props := NewPropertyRepository(db)
	r := NewCustodyRepository(db)
	ctx := context.Background()

	c := newCase(1, 2026, "PROP-c1")
	require.NoError(t, cases.CreateWithProperties(ctx, c))
	pid := c.Properties[0].ID

	latest, err := r.LatestLog(ctx, pid)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := &model.CustodyLog{
		PropertyID:  pid,
		FromOfficer: "Ravi Kumar",
		ToOfficer:   "SI Rao",
		Purpose:     "FSL examination",
		MovedBy:     1,
		MovedAt:     time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, r.Transfer(ctx, first, "FSL Lab"))

	second := &model.CustodyLog{
		PropertyID:  pid,
		FromOfficer: "SI Rao",
		ToOfficer:   "HC Singh",
		Purpose:     "Court",
		MovedBy:     1,
	}
	require.NoError(t, r.Transfer(ctx, second, "Court Room 2"))

	latest, err = r.LatestLog(ctx, pid)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "HC Singh", latest.ToOfficer)

	logs, err := r.ListLogs(ctx, pid)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID)

	p, err := props.GetByID(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, "Court Room 2", p.Location)
}

func TestCustodyRepository_TransferUnknownPropertyRollsBack(t *testing.T) {
	db := newTestDB(t)
	r := NewCustodyRepository(db)
	ctx := context.Background()

	missing := "9b2f6c1e-3f0a-4f7e-9a55-0a1b2c3d4e5f"
	err := r.Transfer(ctx, &model.CustodyLog{
		PropertyID:  missing,
		FromOfficer: "A",
		ToOfficer:   "B",
		Purpose:     "x",
		MovedBy:     1,
	}, "Nowhere")
	assert.True(t, IsNotFound(err))

	logs, err := r.ListLogs(ctx, missing)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestDisposalRepository_ClosesCaseWithLastItem(t *testing.T) {
	db := newTestDB(t)
	cases := NewCaseRepository(db)
	props := NewPropertyRepository(db)
	r := NewDisposalRepository(db)
	ctx := context.Background()

	c := newCase(1, 2026, "PROP-d1", "PROP-d2")
	require.NoError(t, cases.CreateWithProperties(ctx, c))
	p1, p2 := c.Properties[0].ID, c.Properties[1].ID

	dispose := func(pid, ref string) (bool, error) {
		return r.Dispose(ctx, &model.Disposal{
			PropertyID:    pid,
			Type:          model.DisposalReturned,
			CourtOrderRef: ref,
			DisposedAt:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			DisposedBy:    1,
		})
	}

	closed, err := dispose(p1, "CO-1")
	require.NoError(t, err)
	assert.False(t, closed)

	got, err := cases.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusOpen, got.Status)

	closed, err = dispose(p2, "CO-2")
	require.NoError(t, err)
	assert.True(t, closed)

	got, err = cases.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusDisposed, got.Status)

	p, err := props.GetByID(ctx, p1)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyDisposed, p.Status)

	d, err := r.GetByPropertyID(ctx, p2)
	require.NoError(t, err)
	assert.Equal(t, "CO-2", d.CourtOrderRef)

	// повторный акт по тому же вещдоку
	_, err = dispose(p1, "CO-3")
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestDisposalRepository_NotInCustodyRollsBack(t *testing.T) {
	db := newTestDB(t)
	cases := NewCaseRepository(db)
	r := NewDisposalRepository(db)
	ctx := context.Background()

	c := newCase(1, 2026, "PROP-s1")
	require.NoError(t, cases.CreateWithProperties(ctx, c))
	pid := c.Properties[0].ID

	// статус сменили в обход акта
	require.NoError(t, db.Model(&model.Property{}).Where("id = ?", pid).
		Update("status", model.PropertyDisposed).Error)

	_, err := r.Dispose(ctx, &model.Disposal{
		PropertyID:    pid,
		Type:          model.DisposalDestroyed,
		CourtOrderRef: "CO-9",
		DisposedAt:    time.Now().UTC(),
		DisposedBy:    1,
	})
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = r.GetByPropertyID(ctx, pid)
	assert.True(t, IsNotFound(err))
}

func TestPhotoRepository_PutGet(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoRepository(db)
	ctx := context.Background()

	info, err := s.Put(ctx, "cases/1/photo.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size)
	assert.NotEmpty(t, info.ETag)

	_, err = s.Put(ctx, "cases/1/photo.jpg", strings.NewReader("other"), "image/jpeg")
	assert.True(t, errors.Is(err, storage.ErrExists))

	got, rc, err := s.Get(ctx, "cases/1/photo.jpg")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, info.ETag, got.ETag)

	_, _, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

package handlers

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/service"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PropertyHandler — бирки, передача, распоряжение и фотографии вещдоков.
type PropertyHandler struct {
	Properties *service.PropertyService
	Custody    *service.CustodyService
	Disposals  *service.DisposalService
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

func NewPropertyHandler(props *service.PropertyService, custody *service.CustodyService, disposals *service.DisposalService,
	logger *zap.SugaredLogger, cfg *config.Config) *PropertyHandler {
	return &PropertyHandler{Properties: props, Custody: custody, Disposals: disposals, Logger: logger, Config: cfg}
}

func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := h.Properties.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListProperties", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": list})
}

// Scan отмечает сканирование бирки и отдаёт вещдок
func (h *PropertyHandler) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	p, err := h.Properties.Scan(r.Context(), userID, chi.URLParam(r, "qrString"))
	if err != nil {
		writeServiceError(w, h.Logger, "Scan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Scan logged successfully", "property": p})
}

func (h *PropertyHandler) UpdateByTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdatePropertyInput
	if !decodeJSON(w, r, h.Logger, "UpdateByTag", &req) {
		return
	}
	p, err := h.Properties.UpdateByToken(r.Context(), userID, chi.URLParam(r, "qrString"), req)
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateByTag", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Property updated successfully", "property": p})
}

// Move передача вещдока другому сотруднику
func (h *PropertyHandler) Move(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.TransferInput
	if !decodeJSON(w, r, h.Logger, "Move", &req) {
		return
	}
	log, err := h.Custody.Transfer(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.Logger, "Move", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Handover complete", "log": log})
}

func (h *PropertyHandler) CustodyHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	hist, err := h.Custody.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "CustodyHistory", err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

// Dispose окончательное распоряжение вещдоком
func (h *PropertyHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.DisposeInput
	if !decodeJSON(w, r, h.Logger, "Dispose", &req) {
		return
	}
	res, err := h.Disposals.Dispose(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.Logger, "Dispose", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Disposal recorded successfully",
		"disposal":   res.Disposal,
		"caseClosed": res.CaseClosed,
	})
}

// TagPNG печатная бирка вещдока
func (h *PropertyHandler) TagPNG(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	png, err := h.Properties.TagPNG(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "TagPNG", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// UploadPhoto загрузка фотографии вещдока (multipart, поле photo)
func (h *PropertyHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	// Лимит общего тела запроса
	maxPhoto := h.Config.PhotoMaxSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxPhoto+1*1024*1024)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		h.Logger.Warnw("UploadPhoto: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.Logger.Warnw("UploadPhoto: missing photo file", "error", err)
		writeError(w, http.StatusBadRequest, "missing photo file")
		return
	}
	defer file.Close()
	if header.Size > maxPhoto {
		h.Logger.Warnw("UploadPhoto: payload too large", "size", header.Size, "limit", maxPhoto)
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// тип определяем по содержимому, заголовку клиента не доверяем
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "failed to read photo")
		return
	}
	contentType := http.DetectContentType(head[:n])
	// multipart.File умеет Seek: хранилищу (S3) нужно тело известной длины
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusBadRequest, "failed to read photo")
		return
	}

	p, err := h.Properties.UploadPhoto(r.Context(), userID, chi.URLParam(r, "id"), file, contentType)
	if err != nil {
		writeServiceError(w, h.Logger, "UploadPhoto", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Photo uploaded", "property": p})
}

func (h *PropertyHandler) Photo(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	info, rc, err := h.Properties.Photo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Photo", err)
		return
	}
	defer rc.Close()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

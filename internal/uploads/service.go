package uploads

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"formlab-backend/internal/forms"
	"formlab-backend/internal/shared/storage/object"
	"formlab-backend/internal/shared/svcerr"
	"formlab-backend/internal/shared/telemetry"
	"formlab-backend/internal/shared/util"
)

const mockURLBase = "https://storage.mock.com/files"

// Request is the JSON upload payload: metadata plus base64 content.
type Request struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Service validates uploads and produces file metadata. Storage is mocked: the
// returned URL points at a fake host. When an object store is configured the
// decoded content is written through it as well, but storage failures do not
// fail the upload.
type Service struct {
	Store object.ObjectStore
}

// NewService constructs a Service; store may be nil.
func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Upload validates the payload and returns metadata for it.
func (s *Service) Upload(ctx context.Context, req Request) (forms.FileMetadata, error) {
	errs := forms.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = append(errs["name"], "Required")
	}
	if strings.TrimSpace(req.Type) == "" {
		errs["type"] = append(errs["type"], "Required")
	}
	if req.Content == "" {
		errs["content"] = append(errs["content"], "Required")
	}
	if req.Size < 0 {
		errs["size"] = append(errs["size"], "Must be a positive number")
	}
	if len(errs) > 0 {
		return forms.FileMetadata{}, svcerr.Validation("Invalid file data", errs)
	}

	if req.Size > forms.MaxFileSize {
		return forms.FileMetadata{}, svcerr.Validation("File too large", nil)
	}

	fileID := gonanoid.MustGenerate("0123456789abcdefghijklmnopqrstuvwxyz", 8)

	meta := forms.FileMetadata{
		ID:         fileID,
		Name:       req.Name,
		Size:       req.Size,
		Type:       req.Type,
		URL:        fmt.Sprintf("%s/%s/%s", mockURLBase, fileID, req.Name),
		UploadedAt: time.Now().UTC(),
	}

	if s.Store != nil {
		s.persist(ctx, fileID, req)
	}

	return meta, nil
}

func (s *Service) persist(ctx context.Context, fileID string, req Request) {
	name, err := util.SanitizeFileName(req.Name)
	if err != nil {
		telemetry.Error("upload.persist.skipped", map[string]any{"file_id": fileID, "error": err.Error()})
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		telemetry.Error("upload.persist.skipped", map[string]any{"file_id": fileID, "error": "invalid base64 content"})
		return
	}

	key := fmt.Sprintf("files/%s/%s", fileID, name)
	if _, err := s.Store.Save(ctx, key, bytes.NewReader(content)); err != nil {
		telemetry.Error("upload.persist.failed", map[string]any{"file_id": fileID, "error": err.Error()})
	}
}

package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-wizard-backend/internal/shared/metrics"
	"resume-wizard-backend/internal/shared/storage/object"
	"resume-wizard-backend/internal/shared/telemetry"
	"resume-wizard-backend/resume/model"
	"resume-wizard-backend/resume/render"
)

// Service contains business logic for generated resumes.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Generate renders the candidate profile into a document, stores it, and
// records the resume. Rendering happens synchronously within the request.
func (s *Service) Generate(ctx context.Context, userID string, profile model.CandidateProfile) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if err := profile.Validate(); err != nil {
		return Resume{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	started := time.Now()
	docBytes, err := render.Resume(profile)
	if err != nil {
		metrics.IncResumeFailed()
		return Resume{}, fmt.Errorf("render resume: %w", err)
	}
	metrics.ObserveRenderDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)

	storageKey, size, _, err := s.Store.Save(ctx, userID, "resume.docx", bytes.NewReader(docBytes))
	if err != nil {
		metrics.IncResumeFailed()
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	snapshot, err := json.Marshal(profile)
	if err != nil {
		return Resume{}, fmt.Errorf("marshal profile: %w", err)
	}

	resume := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FullName:   strings.TrimSpace(profile.Name),
		StorageKey: storageKey,
		MimeType:   render.MimeType,
		SizeBytes:  size,
		Profile:    snapshot,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncResumeFailed()
		return Resume{}, err
	}

	metrics.IncResumeGenerated()
	return resume, nil
}

// Get returns a single resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, fmt.Errorf("%w: resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Download opens the stored document for the given resume.
func (s *Service) Download(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	reader, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return Resume{}, nil, fmt.Errorf("open stored resume: %w", err)
	}
	return resume, reader, nil
}

// Delete soft-deletes the record and removes the stored document.
// The blob removal is best-effort: the record is the source of truth.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}

	if err := s.Repo.SoftDelete(ctx, userID, resumeID); err != nil {
		return err
	}
	metrics.IncResumeDeleted()

	if err := s.Store.Delete(ctx, resume.StorageKey); err != nil {
		telemetry.Error("resume.blob_delete_failed", map[string]any{
			"resume_id":   resumeID,
			"storage_key": resume.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}

// DownloadFileName derives the attachment name from the candidate name.
func DownloadFileName(resume Resume) string {
	name := strings.TrimSpace(resume.FullName)
	if name == "" {
		return "resume.docx"
	}
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, name)
	if name == "" {
		return "resume.docx"
	}
	return name + "_Resume.docx"
}

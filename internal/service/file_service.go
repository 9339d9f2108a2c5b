package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/internal/storage"
	"hrportal/pkg/apperror"
)

// FileLocator resolves upload keys to their public URL and to the file on disk.
type FileLocator interface {
	FileResolver
	Path(ctx context.Context, key string) (string, error)
}

// FileService authorizes downloads of uploaded files. A file is readable by
// reviewers of the company it was uploaded for, and by whoever may view the
// document request or the document on file it is attached to.
type FileService interface {
	Open(ctx context.Context, sess *session.Session, key string) (string, error)
}

type fileService struct {
	files     FileLocator
	documents repository.DocumentRepository
}

func NewFileService(files FileLocator, documents repository.DocumentRepository) FileService {
	return &fileService{files: files, documents: documents}
}

func (s *fileService) Open(ctx context.Context, sess *session.Session, key string) (string, error) {
	p := sess.Principal()
	if p == nil || !p.Active {
		return "", fmt.Errorf("open file: %w", apperror.ErrUnauthorized)
	}
	if s.files == nil {
		return "", fmt.Errorf("file %s: %w", key, apperror.ErrNotFound)
	}
	company, ok := storage.UploadCompany(key)
	if !ok {
		return "", fmt.Errorf("file %s: %w", key, apperror.ErrNotFound)
	}
	url, err := s.files.Resolve(ctx, key)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return "", fmt.Errorf("file %s: %w", key, apperror.ErrNotFound)
		}
		return "", err
	}

	allowed, err := s.canRead(ctx, p, company, url)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("open file: %w", apperror.ErrUnauthorized)
	}
	return s.files.Path(ctx, key)
}

func (s *fileService) canRead(ctx context.Context, p *model.Principal, company uuid.UUID, url string) (bool, error) {
	if authz.IsReviewer(p, company) {
		return true, nil
	}

	req, err := s.documents.FindRequestByFulfillmentURL(ctx, url)
	switch {
	case err == nil:
		if authz.CanView(p, req) {
			return true, nil
		}
	case !errors.Is(err, apperror.ErrNotFound):
		return false, err
	}

	doc, err := s.documents.FindByFileURL(ctx, url)
	switch {
	case err == nil:
		return authz.IsReviewer(p, doc.CompanyID) ||
			(authz.CanAccessCompany(p, doc.CompanyID) && p.IsEmployee(doc.EmployeeID)), nil
	case errors.Is(err, apperror.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/resume"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/extract"
)

// FileStorage is the slice of object storage the resume flow needs.
type FileStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// ResumeService extracts text from an upload and overwrites the candidate's
// single resume record. The raw file goes to object storage when configured,
// but the extracted text is what every downstream consumer reads.
type ResumeService struct {
	resumes resume.Repository
	files   FileStorage
	logger  Logger
}

func NewResumeService(resumes resume.Repository, files FileStorage, logger Logger) *ResumeService {
	return &ResumeService{resumes: resumes, files: files, logger: logger}
}

func (s *ResumeService) Upload(ctx context.Context, candidate *user.User, data []byte, filename string) (*resume.Record, error) {
	if len(data) == 0 {
		return nil, common.NewValidationError("invalid request", map[string]string{"resume": "file is empty"})
	}
	text, err := extract.Text(data, filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, common.NewError(common.CodeExtractionFailed, "could not extract text from resume", nil)
	}

	fileURL := ""
	if s.files != nil {
		key := fmt.Sprintf("resumes/%s%s", candidate.ID, strings.ToLower(filepath.Ext(filename)))
		url, err := s.files.Put(ctx, key, data, contentTypeFor(filename))
		if err != nil {
			// Storage is not required for correctness; the extracted text is.
			s.logger.Error(fmt.Sprintf("resume file upload failed candidate_id=%s: %v", candidate.ID, err))
		} else {
			fileURL = url
		}
	}

	record := resume.Record{CandidateID: candidate.ID, Text: text, FileURL: fileURL}
	if err := s.resumes.Upsert(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("resume stored candidate_id=%s chars=%d", candidate.ID, len(text)))
	return &record, nil
}

func (s *ResumeService) Get(ctx context.Context, candidateID common.ID) (*resume.Record, error) {
	return s.resumes.GetByCandidate(ctx, candidateID)
}

// Download fetches the original uploaded file from object storage. The second
// return value is the content type recorded at upload time.
func (s *ResumeService) Download(ctx context.Context, candidateID common.ID) ([]byte, string, error) {
	record, err := s.resumes.GetByCandidate(ctx, candidateID)
	if err != nil {
		return nil, "", err
	}
	if record.FileURL == "" || s.files == nil {
		return nil, "", common.NewError(common.CodeNotFound, "resume file not stored", nil)
	}
	key, err := objectKey(record.FileURL)
	if err != nil {
		return nil, "", err
	}
	data, err := s.files.Get(ctx, key)
	if err != nil {
		return nil, "", common.NewError(common.CodeUnavailable, "could not fetch resume file", err)
	}
	return data, contentTypeFor(key), nil
}

// objectKey strips the "s3://bucket/" prefix written by Put.
func objectKey(fileURL string) (string, error) {
	rest := strings.TrimPrefix(fileURL, "s3://")
	idx := strings.IndexByte(rest, '/')
	if rest == fileURL || idx <= 0 || idx == len(rest)-1 {
		return "", common.NewError(common.CodeInternal, "malformed resume file url", nil)
	}
	return rest[idx+1:], nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

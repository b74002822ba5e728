package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Followingae/rfm-case-submit/internal/detect"
	"github.com/Followingae/rfm-case-submit/internal/extract"
	"github.com/Followingae/rfm-case-submit/internal/models"
	"github.com/Followingae/rfm-case-submit/internal/parser"
	"github.com/Followingae/rfm-case-submit/internal/repository"
	"github.com/Followingae/rfm-case-submit/internal/session"
	"github.com/Followingae/rfm-case-submit/internal/validation"
)

// Status represents the upload processing status.
type Status string

const (
	StatusStoring    Status = "storing"
	StatusExtracting Status = "extracting"
	StatusParsing    Status = "parsing"
	StatusDetecting  Status = "detecting"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Job represents one async upload processing job. Each uploaded file
// gets its own job; failures in extraction, parsing or detection do not
// fail the job, only a storage failure does.
type Job struct {
	ID          string                   `json:"id"`
	CaseID      string                   `json:"caseId"`
	Key         models.DocKey            `json:"key"`
	FileName    string                   `json:"fileName"`
	Size        int64                    `json:"size"`
	Status      Status                   `json:"status"`
	Progress    float64                  `json:"progress"`
	Stage       string                   `json:"stage"`
	FileInfo    *models.FileInfo         `json:"fileInfo,omitempty"`
	Detection   *models.DocTypeDetection `json:"detection,omitempty"`
	Error       string                   `json:"error,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	CompletedAt *time.Time               `json:"completedAt,omitempty"`
}

// Store is the slice of the storage layer upload jobs need.
type Store interface {
	SaveBytes(name, contentType string, data []byte) (*models.FileInfo, error)
}

// Notifier pushes job updates out to connected clients.
type Notifier interface {
	NotifyJob(job *Job)
}

// Manager handles async per-file upload processing.
type Manager struct {
	jobs     map[string]*Job
	mu       sync.RWMutex
	store    Store
	cases    *session.Manager
	repo     repository.Repository
	objects  repository.ObjectStore
	notifier Notifier
}

// NewManager creates a new upload processing manager.
func NewManager(store Store, cases *session.Manager, repo repository.Repository, objects repository.ObjectStore, notifier Notifier) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		store:    store,
		cases:    cases,
		repo:     repo,
		objects:  objects,
		notifier: notifier,
	}
}

// StartJob begins async processing of a single uploaded file.
func (m *Manager) StartJob(caseID string, key models.DocKey, fileName, contentType string, data []byte) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		CaseID:    caseID,
		Key:       key,
		FileName:  fileName,
		Size:      int64(len(data)),
		Status:    StatusStoring,
		Stage:     "storing file",
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.processJob(job, contentType, data)

	return job
}

// GetJob retrieves a copy of a job by ID.
func (m *Manager) GetJob(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, false
	}
	copied := *job
	return &copied, true
}

// processJob runs the full pipeline for one file: store, mirror,
// persist, extract, parse, detect, recompute duplicates.
func (m *Manager) processJob(job *Job, contentType string, data []byte) {
	// Recover from panics to prevent backend crash
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Upload %s] PANIC recovered: %v\n", job.ID[:8], r)
			m.markJobError(job, fmt.Sprintf("upload processing panicked: %v", r))
		}
	}()

	ctx := context.Background()
	fmt.Printf("[Upload %s] Processing %s for case %s slot %s\n", job.ID[:8], job.FileName, shortID(job.CaseID), job.Key)

	// Stage 1: store raw bytes
	info, err := m.store.SaveBytes(job.FileName, contentType, data)
	if err != nil {
		m.markJobError(job, fmt.Sprintf("failed to store file: %v", err))
		return
	}

	file := models.UploadedFile{ID: info.ID, Name: info.Name, Size: info.Size, Type: info.ContentType}
	if !m.cases.AttachFile(job.CaseID, job.Key, file) {
		m.markJobError(job, "case not found")
		return
	}

	m.updateJob(job, func(j *Job) {
		j.FileInfo = info
		j.Status = StatusExtracting
		j.Stage = "extracting text"
		j.Progress = 30
	})

	// Persistence is fire-and-forget: failures are logged, never fatal.
	storagePath := m.mirrorToObjectStore(ctx, job, info, contentType, data)
	m.persistDocument(ctx, job, info, contentType, storagePath)

	// Stage 2: extract text
	result, err := extract.Text(job.FileName, contentType, data)
	if err != nil {
		fmt.Printf("[Upload %s] Extraction skipped: %v\n", job.ID[:8], err)
		m.recomputeDuplicates(job)
		m.markJobComplete(job)
		return
	}

	// Stage 3: parse structured slots
	m.updateJob(job, func(j *Job) {
		j.Status = StatusParsing
		j.Stage = "parsing document"
		j.Progress = 60
	})
	m.parseStructured(ctx, job, result)

	// Stage 4: detect document type
	m.updateJob(job, func(j *Job) {
		j.Status = StatusDetecting
		j.Stage = "detecting document type"
		j.Progress = 90
	})

	det := detect.DocumentType(result.Text, job.Key.SlotID)
	m.cases.SetDetection(job.CaseID, info.ID, det)
	m.updateJob(job, func(j *Job) {
		j.Detection = &det
	})

	m.recomputeDuplicates(job)
	m.markJobComplete(job)
	fmt.Printf("[Upload %s] Processing complete: %s (%d bytes)\n", job.ID[:8], info.ID, info.Size)
}

// parseStructured runs the MDF or trade license parser when the upload
// went into one of the two structured slots.
func (m *Manager) parseStructured(ctx context.Context, job *Job, result extract.Result) {
	if job.Key.Kind != models.DocKeySlot {
		return
	}

	switch job.Key.SlotID {
	case "mdf":
		parsed := parser.ParseMDF(result.Text)
		scan := validation.ValidateMDF(&parsed)
		m.cases.SetMDF(job.CaseID, &parsed, result.Confidence, &scan)
		if err := m.repo.UpsertExtraction(ctx, job.CaseID, job.Key.SlotID, &parsed, result.Confidence); err != nil {
			fmt.Printf("[Upload %s] Failed to persist MDF extraction: %v\n", job.ID[:8], err)
		}
		fmt.Printf("[Upload %s] MDF parsed: %d/%d critical fields present\n", job.ID[:8], scan.TotalPresent, scan.TotalChecked)
	case "trade-license":
		parsed := parser.ParseTradeLicense(result.Text)
		m.cases.SetTradeLicense(job.CaseID, &parsed, result.Confidence)
		if err := m.repo.UpsertExtraction(ctx, job.CaseID, job.Key.SlotID, &parsed, result.Confidence); err != nil {
			fmt.Printf("[Upload %s] Failed to persist trade license extraction: %v\n", job.ID[:8], err)
		}
		fmt.Printf("[Upload %s] Trade license parsed: number=%q authority=%q\n", job.ID[:8], parsed.LicenseNumber, parsed.Authority)
	}
}

// mirrorToObjectStore uploads the raw bytes to S3-compatible storage
// and returns the storage path, or "" when the mirror failed.
func (m *Manager) mirrorToObjectStore(ctx context.Context, job *Job, info *models.FileInfo, contentType string, data []byte) string {
	objectName := fmt.Sprintf("cases/%s/%s", job.CaseID, info.ID)
	path, err := m.objects.Upload(ctx, objectName, data, contentType)
	if err != nil {
		fmt.Printf("[Upload %s] Object store mirror failed: %v\n", job.ID[:8], err)
		return ""
	}
	return path
}

func (m *Manager) persistDocument(ctx context.Context, job *Job, info *models.FileInfo, contentType, storagePath string) {
	var err error
	if job.Key.Kind == models.DocKeySlot {
		err = m.repo.AppendDocument(ctx, repository.DocumentRecord{
			ID:          info.ID,
			CaseID:      job.CaseID,
			SlotID:      job.Key.SlotID,
			FileName:    info.Name,
			StoragePath: storagePath,
			Size:        info.Size,
			ContentType: contentType,
			UploadedAt:  info.UploadedAt,
		})
	} else {
		err = m.repo.AppendShareholderDocument(ctx, repository.ShareholderDocumentRecord{
			ID:            info.ID,
			CaseID:        job.CaseID,
			ShareholderID: job.Key.ShareholderID,
			DocType:       string(job.Key.DocType),
			FileName:      info.Name,
			StoragePath:   storagePath,
			Size:          info.Size,
			UploadedAt:    info.UploadedAt,
		})
	}
	if err != nil {
		fmt.Printf("[Upload %s] Failed to persist document record: %v\n", job.ID[:8], err)
	}
}

// recomputeDuplicates rebuilds the duplicate report over the whole raw
// store at the end of every job.
func (m *Manager) recomputeDuplicates(job *Job) {
	files, ok := m.cases.FilesSnapshot(job.CaseID)
	if !ok {
		return
	}
	m.cases.SetDuplicates(job.CaseID, detect.Duplicates(files))
}

// updateJob applies a mutation under lock and notifies listeners.
func (m *Manager) updateJob(job *Job, fn func(*Job)) {
	m.mu.Lock()
	fn(job)
	copied := *job
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifyJob(&copied)
	}
}

// markJobComplete marks job as complete (thread-safe).
func (m *Manager) markJobComplete(job *Job) {
	m.updateJob(job, func(j *Job) {
		j.Status = StatusComplete
		j.Stage = "complete"
		j.Progress = 100
		now := time.Now()
		j.CompletedAt = &now
	})
}

// markJobError marks job as failed (thread-safe).
func (m *Manager) markJobError(job *Job, errMsg string) {
	m.updateJob(job, func(j *Job) {
		j.Status = StatusError
		j.Error = errMsg
		now := time.Now()
		j.CompletedAt = &now
	})
	fmt.Printf("[Upload %s] Error: %s\n", job.ID[:8], errMsg)
}

// CleanupOldJobs removes finished jobs older than the specified duration.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, job := range m.jobs {
		if job.Status == StatusComplete || job.Status == StatusError {
			if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
				delete(m.jobs, id)
			}
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// CaseRecord is the persisted shape of a case's merchant state.
type CaseRecord struct {
	ID           string    `db:"id"`
	LegalName    string    `db:"legal_name"`
	DBA          string    `db:"dba"`
	CaseType     string    `db:"case_type"`
	BranchMode   string    `db:"branch_mode"`
	Conditionals string    `db:"conditionals"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DocumentRecord is one accepted upload against a checklist slot.
type DocumentRecord struct {
	ID          string    `db:"id"`
	CaseID      string    `db:"case_id"`
	SlotID      string    `db:"slot_id"`
	FileName    string    `db:"file_name"`
	StoragePath string    `db:"storage_path"`
	Size        int64     `db:"size"`
	ContentType string    `db:"content_type"`
	UploadedAt  time.Time `db:"uploaded_at"`
}

// ShareholderDocumentRecord is one accepted KYC upload for a shareholder.
type ShareholderDocumentRecord struct {
	ID            string    `db:"id"`
	CaseID        string    `db:"case_id"`
	ShareholderID string    `db:"shareholder_id"`
	DocType       string    `db:"doc_type"`
	FileName      string    `db:"file_name"`
	StoragePath   string    `db:"storage_path"`
	Size          int64     `db:"size"`
	UploadedAt    time.Time `db:"uploaded_at"`
}

// Repository records case intake state as it changes. The wizard never
// reads this data back during a session; it exists for audit and
// recovery, so every method is a write.
type Repository interface {
	SaveCase(ctx context.Context, caseID string, merchant models.MerchantInfo, conditionals map[string]bool) error
	AppendDocument(ctx context.Context, doc DocumentRecord) error
	UpsertExtraction(ctx context.Context, caseID, slotID string, record any, confidence int) error
	ReplaceShareholders(ctx context.Context, caseID string, shareholders []models.ShareholderKYC) error
	AppendShareholderDocument(ctx context.Context, doc ShareholderDocumentRecord) error
}

type sqliteRepository struct {
	db *sqlx.DB
}

// NewRepository creates a SQLite-backed Repository.
func NewRepository(db *sqlx.DB) Repository {
	return &sqliteRepository{db: db}
}

// SaveCase inserts the case on first write and updates merchant info and
// conditionals on every later one. created_at survives updates.
func (r *sqliteRepository) SaveCase(ctx context.Context, caseID string, merchant models.MerchantInfo, conditionals map[string]bool) error {
	if conditionals == nil {
		conditionals = map[string]bool{}
	}
	encoded, err := json.Marshal(conditionals)
	if err != nil {
		return fmt.Errorf("failed to encode conditionals: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO cases (id, legal_name, dba, case_type, branch_mode, conditionals, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(id) DO UPDATE SET
	            legal_name = excluded.legal_name,
	            dba = excluded.dba,
	            case_type = excluded.case_type,
	            branch_mode = excluded.branch_mode,
	            conditionals = excluded.conditionals,
	            updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		caseID, merchant.LegalName, merchant.DBA,
		string(merchant.CaseType), string(merchant.BranchMode),
		string(encoded), now, now)
	if err != nil {
		return fmt.Errorf("failed to save case: %w", err)
	}
	return nil
}

// AppendDocument records an accepted upload. Removals are not recorded;
// the document table is an append-only intake log.
func (r *sqliteRepository) AppendDocument(ctx context.Context, doc DocumentRecord) error {
	query := `INSERT INTO case_documents (id, case_id, slot_id, file_name, storage_path, size, content_type, uploaded_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.CaseID, doc.SlotID, doc.FileName,
		doc.StoragePath, doc.Size, doc.ContentType, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to append document: %w", err)
	}
	return nil
}

// UpsertExtraction replaces the structured record for a slot atomically.
// The record is msgpack-encoded; re-parses overwrite, they never merge.
func (r *sqliteRepository) UpsertExtraction(ctx context.Context, caseID, slotID string, record any, confidence int) error {
	payload, err := msgpack.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode extraction: %w", err)
	}

	query := `INSERT INTO extractions (case_id, slot_id, payload, confidence, updated_at)
	          VALUES (?, ?, ?, ?, ?)
	          ON CONFLICT(case_id, slot_id) DO UPDATE SET
	            payload = excluded.payload,
	            confidence = excluded.confidence,
	            updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query, caseID, slotID, payload, confidence, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert extraction: %w", err)
	}
	return nil
}

// ReplaceShareholders swaps the full shareholder list for a case in one
// transaction. Position preserves the entry order.
func (r *sqliteRepository) ReplaceShareholders(ctx context.Context, caseID string, shareholders []models.ShareholderKYC) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shareholders WHERE case_id = ?`, caseID); err != nil {
		return fmt.Errorf("failed to clear shareholders: %w", err)
	}

	query := `INSERT INTO shareholders (case_id, id, name, percentage, position) VALUES (?, ?, ?, ?, ?)`
	for i, sh := range shareholders {
		if _, err := tx.ExecContext(ctx, query, caseID, sh.ID, sh.Name, sh.Percentage, i); err != nil {
			return fmt.Errorf("failed to insert shareholder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shareholders: %w", err)
	}
	return nil
}

// AppendShareholderDocument records an accepted KYC upload.
func (r *sqliteRepository) AppendShareholderDocument(ctx context.Context, doc ShareholderDocumentRecord) error {
	query := `INSERT INTO shareholder_documents (id, case_id, shareholder_id, doc_type, file_name, storage_path, size, uploaded_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.CaseID, doc.ShareholderID, doc.DocType,
		doc.FileName, doc.StoragePath, doc.Size, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to append shareholder document: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// NoopRepository discards every write. Used when persistence is
// disabled in config and as the default in tests.
type NoopRepository struct{}

// NewNoopRepository creates a Repository that records nothing.
func NewNoopRepository() Repository {
	return &NoopRepository{}
}

func (n *NoopRepository) SaveCase(ctx context.Context, caseID string, merchant models.MerchantInfo, conditionals map[string]bool) error {
	return nil
}

func (n *NoopRepository) AppendDocument(ctx context.Context, doc DocumentRecord) error {
	return nil
}

func (n *NoopRepository) UpsertExtraction(ctx context.Context, caseID, slotID string, record any, confidence int) error {
	return nil
}

func (n *NoopRepository) ReplaceShareholders(ctx context.Context, caseID string, shareholders []models.ShareholderKYC) error {
	return nil
}

func (n *NoopRepository) AppendShareholderDocument(ctx context.Context, doc ShareholderDocumentRecord) error {
	return nil
}

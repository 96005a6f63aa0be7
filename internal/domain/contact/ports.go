package contact

import "context"

type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]Contact, error)
	GetByID(ctx context.Context, companyID, contactID string) (*Contact, error)
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	UpdateStage(ctx context.Context, companyID, contactID string, stage Stage) error
	Delete(ctx context.Context, companyID, contactID string) error
}

// BulkInserter stores a batch of contacts atomically and reports how many were written.
type BulkInserter interface {
	InsertContacts(ctx context.Context, contacts []Contact) (int64, error)
}

package contact

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
)

type MoveContactStageInput struct {
	ContactRef
	Stage string
}

// MoveContactStage handles a kanban drop. Only the stage column is written.
type MoveContactStage interface {
	Execute(ctx context.Context, in MoveContactStageInput) (domain.Stage, error)
}

type moveContactStage struct {
	repo domain.Repository
}

func NewMoveContactStage(repo domain.Repository) MoveContactStage {
	return &moveContactStage{repo: repo}
}

func (uc *moveContactStage) Execute(ctx context.Context, in MoveContactStageInput) (domain.Stage, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	stage, ok := domain.ParseStage(in.Stage)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, in.Stage)
	}

	if err := uc.repo.UpdateStage(ctx, in.CompanyID, in.ContactID, stage); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return "", ErrContactNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrSaveContact, err)
	}
	return stage, nil
}

package contact

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
)

type ListContactsInput struct {
	CompanyID string
	Filters   domain.Filters
}

type ListContacts interface {
	Execute(ctx context.Context, in ListContactsInput) ([]domain.Contact, error)
}

type listContacts struct {
	contacts contactLister
}

func NewListContacts(contacts contactLister) ListContacts {
	return &listContacts{contacts: contacts}
}

func (uc *listContacts) Execute(ctx context.Context, in ListContactsInput) ([]domain.Contact, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return nil, ErrInvalidCompanyID
	}

	all, err := uc.contacts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListContacts, err)
	}
	return in.Filters.Apply(all), nil
}

type BoardColumns interface {
	Execute(ctx context.Context, in ListContactsInput) ([]domain.BoardColumn, error)
}

type boardColumns struct {
	list ListContacts
}

// NewBoardColumns groups the filtered listing into kanban columns.
func NewBoardColumns(list ListContacts) BoardColumns {
	return &boardColumns{list: list}
}

func (uc *boardColumns) Execute(ctx context.Context, in ListContactsInput) ([]domain.BoardColumn, error) {
	contacts, err := uc.list.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	return domain.GroupByStage(contacts), nil
}

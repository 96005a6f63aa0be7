package contact

import "errors"

var (
	ErrInvalidCompanyID     = errors.New("invalid company id")
	ErrInvalidContactID     = errors.New("invalid contact id")
	ErrMalformedCSV         = errors.New("malformed csv file")
	ErrLoadExistingContacts = errors.New("failed to load existing contacts")
	ErrImportContacts       = errors.New("failed to import contacts")
	ErrListContacts         = errors.New("failed to list contacts")
	ErrContactNotFound      = errors.New("contact not found")
	ErrInvalidContact       = errors.New("invalid contact")
	ErrInvalidStage         = errors.New("invalid stage")
	ErrSaveContact          = errors.New("failed to save contact")
	ErrDeleteContact        = errors.New("failed to delete contact")
)

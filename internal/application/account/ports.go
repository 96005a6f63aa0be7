package account

import (
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(session domain.Session) (token string, expiresAt time.Time, err error)
}

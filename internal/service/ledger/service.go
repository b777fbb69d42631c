package ledger

import (
	"cases_backend/internal/repository"
	"cases_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	userRepo  repository.UserRepository
	txRepo    repository.LedgerTxRepository
	txManager trm.Manager
}

func NewLedgerService(
	userRepo repository.UserRepository,
	txRepo repository.LedgerTxRepository,
	txManager trm.Manager,
) service.LedgerService {
	return &serv{
		userRepo:  userRepo,
		txRepo:    txRepo,
		txManager: txManager,
	}
}

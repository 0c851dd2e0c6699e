package repository

import (
	"github.com/kamaj/bank/pkg/repository/account"
)

// AccountRepository is the account store used by the services.
type AccountRepository = account.Repository

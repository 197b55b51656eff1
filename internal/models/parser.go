package models

import (
	"moneyflow/internal/logging"
)

// Parser defines the interface for all parser implementations.
type Parser interface {
	Parse(content []byte, filename string) ([]Transaction, error)
	SetLogger(logger logging.Logger)
}

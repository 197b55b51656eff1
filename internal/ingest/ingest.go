// Package ingest runs the ingestion pipeline: format detection, parsing,
// deduplication, categorization and persistence.
package ingest

import (
	"fmt"

	"moneyflow/internal/categorizer"
	"moneyflow/internal/config"
	"moneyflow/internal/logging"
	"moneyflow/internal/models"
	"moneyflow/internal/parser"
	"moneyflow/internal/store"
)

// RecordStore is the slice of the persistence layer the pipeline needs.
type RecordStore interface {
	FindByHash(hash string) (*models.Transaction, error)
	InsertTransaction(tx *models.Transaction) error
	ListRules() ([]models.CategoryRule, error)
}

// Service wires the detector, parsers, categorizer and store into the
// upload pipeline. Re-ingesting the same file is idempotent: every record
// it carries is already fingerprinted and gets skipped.
type Service struct {
	store  RecordStore
	engine *categorizer.Engine
	cfg    *config.Config
	logger logging.Logger
}

// NewService creates the ingestion service.
func NewService(recordStore RecordStore, engine *categorizer.Engine, cfg *config.Config, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Service{
		store:  recordStore,
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// DetectAndParse picks the dialect for the raw content and parses it into
// canonical records. Returns parser.ErrUnrecognizedFormat when no dialect
// matches.
func (s *Service) DetectAndParse(content []byte, filename string) ([]models.Transaction, error) {
	p, err := parser.DetectParser(content, s.cfg)
	if err != nil {
		return nil, err
	}
	p.SetLogger(s.logger)
	return p.Parse(content, filename)
}

// Ingest runs each record through the deduplication gate and, for new
// records, categorization against the live rule set and persistence.
// Duplicates are counted as skipped, never surfaced as failures.
func (s *Service) Ingest(transactions []models.Transaction) (models.UploadSummary, error) {
	rules, err := s.store.ListRules()
	if err != nil {
		return models.UploadSummary{}, err
	}

	summary := models.UploadSummary{}
	for _, tx := range transactions {
		existing, err := s.store.FindByHash(tx.RecordHash)
		if err != nil {
			return withMessage(summary), err
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		tx = s.engine.Categorize(tx, rules)
		if err := s.store.InsertTransaction(&tx); err != nil {
			// Lost a concurrent race on the unique record_hash index:
			// the store's constraint is the enforcement point, so the
			// record is a duplicate, not a failure.
			if store.IsDuplicate(err) {
				summary.Skipped++
				continue
			}
			return withMessage(summary), err
		}
		summary.Imported++
	}

	s.logger.Info("Ingestion complete",
		logging.Field{Key: "imported", Value: summary.Imported},
		logging.Field{Key: "skipped", Value: summary.Skipped})
	return withMessage(summary), nil
}

// IngestFile combines DetectAndParse and Ingest for one uploaded file.
func (s *Service) IngestFile(content []byte, filename string) (models.UploadSummary, error) {
	transactions, err := s.DetectAndParse(content, filename)
	if err != nil {
		return models.UploadSummary{}, err
	}
	return s.Ingest(transactions)
}

func withMessage(summary models.UploadSummary) models.UploadSummary {
	summary.Message = fmt.Sprintf("Processing complete. %d imported, %d skipped.",
		summary.Imported, summary.Skipped)
	return summary
}

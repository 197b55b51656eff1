// Package store provides the relational persistence layer for transactions
// and category rules.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moneyflow/internal/models"
)

// Store wraps the gorm handle with the operations the pipeline needs. The
// unique index on record_hash is the enforcement point against concurrent
// duplicate inserts.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres, runs migrations and returns the store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Transaction{}, &models.CategoryRule{}); err != nil {
		return nil, fmt.Errorf("error migrating database schema: %w", err)
	}

	return &Store{db: db}, nil
}

// New wraps an existing gorm handle. Used by tests.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// IsDuplicate reports whether err is a uniqueness-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// InsertTransaction persists a new transaction record.
func (s *Store) InsertTransaction(tx *models.Transaction) error {
	if err := s.db.Create(tx).Error; err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	return nil
}

// FindByHash returns the transaction with the given record hash, or nil
// when none exists.
func (s *Store) FindByHash(hash string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Where("record_hash = ?", hash).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying transaction by hash: %w", err)
	}
	return &tx, nil
}

// ListTransactions returns a page of transactions ordered by date
// descending.
func (s *Store) ListTransactions(offset, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Order("date DESC").Offset(offset).Limit(limit).Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return transactions, nil
}

// ListTransactionsByDateRange returns all transactions within the
// inclusive calendar-date range; nil bounds are unbounded.
func (s *Store) ListTransactionsByDateRange(start, end *time.Time) ([]models.Transaction, error) {
	q := s.db.Order("date ASC")
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("error listing transactions by date range: %w", err)
	}
	return transactions, nil
}

// UpdateTransactionCategory overwrites the category of one transaction.
// The bool result reports whether the transaction existed.
func (s *Store) UpdateTransactionCategory(id, category string) (bool, error) {
	result := s.db.Model(&models.Transaction{}).Where("id = ?", id).Update("category", category)
	if result.Error != nil {
		return false, fmt.Errorf("error updating transaction category: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// InsertRule persists a new category rule.
func (s *Store) InsertRule(rule *models.CategoryRule) error {
	if err := s.db.Create(rule).Error; err != nil {
		return fmt.Errorf("error inserting category rule: %w", err)
	}
	return nil
}

// ListRules returns all category rules ordered by keyword length
// descending, so engines scanning for the first hit see the most specific
// keyword first.
func (s *Store) ListRules() ([]models.CategoryRule, error) {
	var rules []models.CategoryRule
	err := s.db.Order("length(keyword) DESC").Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("error listing category rules: %w", err)
	}
	return rules, nil
}

// FindRuleByKeyword returns the rule with the given keyword, or nil when
// none exists.
func (s *Store) FindRuleByKeyword(keyword string) (*models.CategoryRule, error) {
	var rule models.CategoryRule
	err := s.db.Where("keyword = ?", keyword).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying rule by keyword: %w", err)
	}
	return &rule, nil
}

// DeleteRule removes the rule with the given id. The bool result reports
// whether a rule existed.
func (s *Store) DeleteRule(id string) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.CategoryRule{})
	if result.Error != nil {
		return false, fmt.Errorf("error deleting category rule: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

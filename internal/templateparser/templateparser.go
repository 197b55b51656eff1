// Package templateparser provides functionality to parse the generic manual
// entry template (date,amount,description,category) into canonical
// transaction records.
package templateparser

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// dateLayout is the ISO calendar date format of the template.
const dateLayout = "2006-01-02"

// templateCSVRow represents a single row in a template CSV file.
// It uses struct tags for gocsv unmarshaling.
type templateCSVRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// Parser parses manual-entry template files. A row's category column, when
// present, seeds the record directly instead of the default.
type Parser struct {
	logger logging.Logger
}

// New creates a template parser.
func New() models.Parser {
	return &Parser{logger: logging.NewLogrusAdapter("info", "text")}
}

// SetLogger implements models.Parser.SetLogger.
func (p *Parser) SetLogger(logger logging.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Parse implements models.Parser.Parse. Rows with an unparseable date or
// amount are skipped silently.
func (p *Parser) Parse(content []byte, filename string) ([]models.Transaction, error) {
	p.logger.WithField("file", filename).Info("Parsing template CSV")

	var rows []*templateCSVRow
	if err := gocsv.Unmarshal(bytes.NewReader(content), &rows); err != nil {
		p.logger.WithError(err).Error("Failed to read template CSV")
		return nil, fmt.Errorf("error reading template CSV: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			p.logger.WithField("date", row.Date).Debug("Skipping row with unparseable date")
			continue
		}

		amount, err := models.ParseCommaInt(row.Amount)
		if err != nil {
			p.logger.WithField("amount", row.Amount).Debug("Skipping row with unparseable amount")
			continue
		}

		category := row.Category
		if category == "" {
			category = models.DefaultCategory
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount,
			Merchant:    row.Description, // manual entries have no separate merchant
			Description: row.Description,
			Source:      models.ManualEntrySource,
			SourceType:  models.SourceManual,
			RecordHash:  recordHash(row.Date, row.Description, amount),
			Category:    category,
		})
	}

	p.logger.Info("Successfully parsed template CSV",
		logging.Field{Key: "count", Value: len(transactions)})
	return transactions, nil
}

// recordHash is a SHA-256 digest over the raw date string, description and
// amount; manual rows carry no external identifier.
func recordHash(rawDate, description string, amount int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", rawDate, description, amount)))
	return hex.EncodeToString(sum[:])
}

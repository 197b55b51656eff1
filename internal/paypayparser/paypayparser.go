// Package paypayparser provides functionality to parse PayPay wallet CSV
// exports into canonical transaction records.
package paypayparser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// dateTimeLayout is the combined date+time format of the export.
const dateTimeLayout = "2006/01/02 15:04:05"

// amountPlaceholder marks an amount column as "not applicable" for a row.
const amountPlaceholder = "-"

// payPayCSVRow represents a single row in a PayPay CSV export.
// It uses struct tags for gocsv unmarshaling.
type payPayCSVRow struct {
	TransactionID  string `csv:"Transaction ID"`
	DateTime       string `csv:"Date & Time"`
	Method         string `csv:"Method"`
	BusinessName   string `csv:"Business Name"`
	Details        string `csv:"Transaction Details"`
	AmountOutgoing string `csv:"Amount Outgoing (Yen)"`
	AmountIncoming string `csv:"Amount Incoming (Yen)"`
}

// Parser parses PayPay wallet exports. The export is UTF-8 with one header
// row; each row carries a unique transaction identifier which doubles as
// the record fingerprint.
type Parser struct {
	fallbackSource string
	logger         logging.Logger
}

// New creates a PayPay parser. fallbackSource is the source label used when
// a row has no payment method.
func New(fallbackSource string) models.Parser {
	return &Parser{
		fallbackSource: fallbackSource,
		logger:         logging.NewLogrusAdapter("info", "text"),
	}
}

// SetLogger implements models.Parser.SetLogger.
func (p *Parser) SetLogger(logger logging.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Parse implements models.Parser.Parse. Rows missing their transaction
// identifier or carrying an unparseable date are skipped silently.
func (p *Parser) Parse(content []byte, filename string) ([]models.Transaction, error) {
	p.logger.WithField("file", filename).Info("Parsing PayPay CSV")

	var rows []*payPayCSVRow
	if err := gocsv.Unmarshal(bytes.NewReader(content), &rows); err != nil {
		p.logger.WithError(err).Error("Failed to read PayPay CSV")
		return nil, fmt.Errorf("error reading PayPay CSV: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.TransactionID == "" {
			continue
		}

		date, err := time.Parse(dateTimeLayout, row.DateTime)
		if err != nil {
			p.logger.WithField("date", row.DateTime).Debug("Skipping row with unparseable date")
			continue
		}

		source := row.Method
		if source == "" {
			source = p.fallbackSource
		}

		transactions = append(transactions, models.Transaction{
			Date:        date.Truncate(24 * time.Hour),
			Amount:      resolveAmount(row.AmountOutgoing, row.AmountIncoming),
			Merchant:    row.BusinessName,
			Description: row.Details,
			Source:      source,
			SourceType:  models.SourcePayPay,
			RecordHash:  row.TransactionID,
			Category:    models.DefaultCategory,
		})
	}

	p.logger.Info("Successfully parsed PayPay CSV",
		logging.Field{Key: "count", Value: len(transactions)})
	return transactions, nil
}

// resolveAmount applies the sign convention: the outgoing column wins when
// present (positive = expense), otherwise the incoming column is negated
// (income), otherwise zero. An absent column behaves like the placeholder.
func resolveAmount(outgoing, incoming string) int64 {
	if outgoing != amountPlaceholder && outgoing != "" {
		v, err := models.ParseCommaInt(outgoing)
		if err != nil {
			return 0
		}
		return v
	}
	if incoming != amountPlaceholder && incoming != "" {
		v, err := models.ParseCommaInt(incoming)
		if err != nil {
			return 0
		}
		return -v
	}
	return 0
}

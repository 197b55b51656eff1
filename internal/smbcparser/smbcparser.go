// Package smbcparser provides functionality to parse SMBC card CSV exports
// into canonical transaction records. The export is CP932/Shift-JIS encoded
// and headerless; columns are addressed by position.
package smbcparser

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// dateLayout is the date format of the data rows.
const dateLayout = "2006/01/02"

// Positional columns of the headerless data rows.
const (
	colDate     = 0
	colMerchant = 1
	colAmount   = 5
)

// Parser parses SMBC card exports. The first line is account metadata, not
// a data row; it yields the source label. Rows have no external identifier,
// so the record fingerprint is synthesized from date, merchant and amount.
type Parser struct {
	fallbackSource string
	logger         logging.Logger
}

// New creates an SMBC parser. fallbackSource is the source label used when
// the metadata line cannot be parsed.
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

// Parse implements models.Parser.Parse. Rows with an unparseable date are
// skipped silently; an unparseable amount keeps the row with amount zero.
func (p *Parser) Parse(content []byte, filename string) ([]models.Transaction, error) {
	p.logger.WithField("file", filename).Info("Parsing SMBC card CSV")

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), content)
	if err != nil {
		p.logger.WithError(err).Error("Failed to decode SMBC CSV as CP932")
		return nil, fmt.Errorf("error decoding SMBC CSV: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1 // row widths vary

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading SMBC metadata line: %w", err)
	}
	source := p.sourceFromHeader(header)

	var transactions []models.Transaction
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.logger.WithError(err).Debug("Skipping malformed row")
			continue
		}
		if len(row) <= colDate {
			continue
		}

		date, err := time.Parse(dateLayout, row[colDate])
		if err != nil {
			p.logger.WithField("date", row[colDate]).Debug("Skipping row with unparseable date")
			continue
		}

		merchant := ""
		if len(row) > colMerchant {
			merchant = row[colMerchant]
		}

		// Amount parse failures are non-fatal: the row is kept at zero.
		var amount int64
		if len(row) > colAmount {
			if v, err := models.ParseCommaInt(row[colAmount]); err == nil {
				amount = v
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount,
			Merchant:    merchant,
			Description: models.CardPaymentDescription,
			Source:      source,
			SourceType:  models.SourceSMBC,
			RecordHash:  recordHash(row[colDate], merchant, amount),
			Category:    models.DefaultCategory,
		})
	}

	p.logger.Info("Successfully parsed SMBC card CSV",
		logging.Field{Key: "count", Value: len(transactions)})
	return transactions, nil
}

// sourceFromHeader builds the source label "{card product} ({masked
// number})" from the 3-field metadata line, falling back to the configured
// label on any parse failure.
func (p *Parser) sourceFromHeader(header []string) string {
	if len(header) < 3 || header[1] == "" || header[2] == "" {
		p.logger.Warn("Could not parse SMBC metadata line, using fallback source")
		return p.fallbackSource
	}
	return fmt.Sprintf("%s (%s)", header[2], header[1])
}

// recordHash is the content-addressed fingerprint: a SHA-256 digest over
// the raw date string, merchant text and resolved amount.
func recordHash(rawDate, merchant string, amount int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", rawDate, merchant, amount)))
	return hex.EncodeToString(sum[:])
}

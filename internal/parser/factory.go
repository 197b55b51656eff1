// Package parser selects the parser implementation matching an uploaded
// file. Detection is content-based: real-world exports have inconsistent
// filenames, so the filename is never authoritative.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"moneyflow/internal/config"
	"moneyflow/internal/models"
	"moneyflow/internal/paypayparser"
	"moneyflow/internal/smbcparser"
	"moneyflow/internal/templateparser"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	PayPay   ParserType = "paypay"
	SMBC     ParserType = "smbc"
	Template ParserType = "template"
)

// ErrUnrecognizedFormat is returned when no dialect matches the content.
// It is a user-correctable input error, not a process failure.
var ErrUnrecognizedFormat = errors.New("unrecognized file format")

// detectWindow is how many leading bytes are inspected for format markers.
const detectWindow = 1000

// GetParser returns a new instance of the appropriate parser for the given
// type. It acts as a factory for creating Parser implementations.
func GetParser(parserType ParserType, cfg *config.Config) (models.Parser, error) {
	switch parserType {
	case PayPay:
		return paypayparser.New(cfg.Parsers.PayPay.FallbackSource), nil
	case SMBC:
		return smbcparser.New(cfg.Parsers.SMBC.FallbackSource), nil
	case Template:
		return templateparser.New(), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}

// Detect inspects raw file content and picks the matching dialect. The
// first window of bytes is tried as UTF-8 for the PayPay and template
// markers, then as CP932/Shift-JIS for the SMBC card markers. Decode
// failures count as "did not match", never as errors.
func Detect(content []byte) (ParserType, error) {
	window := content
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}

	if utf8.Valid(window) {
		head := string(window)
		if containsAny(head, "Transaction ID", "取引番号") {
			return PayPay, nil
		}
		if containsAny(head, "date,amount,description") {
			return Template, nil
		}
	}

	if decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), window); err == nil {
		head := string(decoded)
		if containsAny(head, "Ｏｌｉｖｅ", "クレジット", "Card") {
			return SMBC, nil
		}
	}

	return "", ErrUnrecognizedFormat
}

// DetectParser combines Detect and GetParser.
func DetectParser(content []byte, cfg *config.Config) (models.Parser, error) {
	parserType, err := Detect(content)
	if err != nil {
		return nil, err
	}
	return GetParser(parserType, cfg)
}

func containsAny(s string, markers ...string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

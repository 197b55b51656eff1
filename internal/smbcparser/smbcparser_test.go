package smbcparser

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"moneyflow/internal/models"
)

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return encoded
}

func TestParse_BasicStatement(t *testing.T) {
	content := shiftJIS(t, "ユーザー,4980-00**,Olive Gold\n2025/11/28,テスト商店,1,1,1,4950,\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, int64(4950), tx.Amount)
	assert.Equal(t, "テスト商店", tx.Merchant)
	assert.Equal(t, models.CardPaymentDescription, tx.Description)
	assert.Equal(t, "Olive Gold (4980-00**)", tx.Source)
	assert.Equal(t, models.SourceSMBC, tx.SourceType)
	assert.Equal(t, models.DefaultCategory, tx.Category)

	sum := sha256.Sum256([]byte("2025/11/28テスト商店4950"))
	assert.Equal(t, hex.EncodeToString(sum[:]), tx.RecordHash)
}

func TestParse_FallbackSourceOnShortMetadata(t *testing.T) {
	content := shiftJIS(t, "ユーザー\n2025/11/28,テスト商店,1,1,1,4950,\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "SMBC Card", transactions[0].Source)
}

func TestParse_SkipsRowWithBadDate(t *testing.T) {
	content := shiftJIS(t, "ユーザー,4980-00**,Olive Gold\nお支払い合計,,,,,10000,\n2025/11/28,テスト商店,1,1,1,4950,\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "テスト商店", transactions[0].Merchant)
}

func TestParse_BadAmountKeepsRowAtZero(t *testing.T) {
	content := shiftJIS(t, "ユーザー,4980-00**,Olive Gold\n2025/11/28,テスト商店,1,1,1,＊,\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, int64(0), transactions[0].Amount)
}

func TestParse_CommaSeparatedAmount(t *testing.T) {
	content := shiftJIS(t, "ユーザー,4980-00**,Olive Gold\n2025/11/28,家電量販店,1,1,1,\"128,000\",\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, int64(128000), transactions[0].Amount)
}

func TestParse_ShortRowWithoutAmount(t *testing.T) {
	content := shiftJIS(t, "ユーザー,4980-00**,Olive Gold\n2025/11/28,テスト商店\n")

	p := New("SMBC Card")
	transactions, err := p.Parse(content, "smbc.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, int64(0), transactions[0].Amount)
}

func TestParse_EmptyFile(t *testing.T) {
	p := New("SMBC Card")
	transactions, err := p.Parse([]byte{}, "smbc.csv")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models"
)

type fakeRuleStore struct {
	byKeyword map[string]models.CategoryRule
}

func newFakeRuleStore() *fakeRuleStore {
	return &fakeRuleStore{byKeyword: make(map[string]models.CategoryRule)}
}

func (f *fakeRuleStore) FindRuleByKeyword(keyword string) (*models.CategoryRule, error) {
	if rule, ok := f.byKeyword[keyword]; ok {
		return &rule, nil
	}
	return nil, nil
}

func (f *fakeRuleStore) InsertRule(rule *models.CategoryRule) error {
	f.byKeyword[rule.Keyword] = *rule
	return nil
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const sampleSeed = `rules:
  - keyword: "ローソン"
    category: "Convenience Store"
  - keyword: "lawson"
    category: "Convenience Store"
  - keyword: "スターバックス"
    category: "Cafe"
`

func TestLoad(t *testing.T) {
	path := writeSeedFile(t, sampleSeed)
	rules, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "ローソン", rules[0].Keyword)
	assert.Equal(t, "Convenience Store", rules[0].Category)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeSeedFile(t, "rules: [not: closed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	store := newFakeRuleStore()
	path := writeSeedFile(t, sampleSeed)

	added, err := Apply(store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Len(t, store.byKeyword, 3)
}

func TestApply_Idempotent(t *testing.T) {
	store := newFakeRuleStore()
	path := writeSeedFile(t, sampleSeed)

	_, err := Apply(store, path, nil)
	require.NoError(t, err)

	added, err := Apply(store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Len(t, store.byKeyword, 3)
}

func TestApply_SkipsEmptyKeyword(t *testing.T) {
	store := newFakeRuleStore()
	path := writeSeedFile(t, `rules:
  - keyword: ""
    category: "Broken"
  - keyword: "lawson"
    category: "Convenience Store"
`)

	added, err := Apply(store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestShippedSeedFile(t *testing.T) {
	rules, err := Load(filepath.Join("..", "..", "database", "rules.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, rules)
	for _, r := range rules {
		assert.NotEmpty(t, r.Keyword)
		assert.NotEmpty(t, r.Category)
	}
}

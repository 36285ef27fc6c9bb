package implementation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB builds SQL without executing it and hands the generated
// statement to capture after each query.
func dryRunDB(t *testing.T, captured *string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)
	return db
}

func TestSearchSimilarOrdersBySimilarity(t *testing.T) {
	var sql string
	repo := NewPassageEmbeddingRepository(dryRunDB(t, &sql))

	_, err := repo.SearchSimilar(context.Background(), "passages", []float32{0.1, 0.2, 0.3}, 5)
	require.NoError(t, err)
	require.NotEmpty(t, sql)

	// The score is computed in SQL and the scan must come back ranked by
	// it; LIMIT without the ORDER BY would return arbitrary rows.
	assert.Contains(t, sql, "1 - (embedding_value <=> ")
	assert.Contains(t, sql, "ORDER BY similarity DESC")
	assert.Contains(t, sql, "LIMIT")
	assert.Regexp(t, `ORDER BY similarity DESC\s+LIMIT`, sql)
	assert.Contains(t, sql, "collection = ")
}

func TestSearchSimilarDefaultsLimit(t *testing.T) {
	var sql string
	repo := NewPassageEmbeddingRepository(dryRunDB(t, &sql))

	_, err := repo.SearchSimilar(context.Background(), "freewriting", []float32{0.5}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, sql)
	assert.Contains(t, sql, "ORDER BY similarity DESC")
	assert.Contains(t, sql, "LIMIT")
}

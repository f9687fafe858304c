package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, translateError(nil))
}

func TestTranslateError_RecordNotFound(t *testing.T) {
	err := translateError(fmt.Errorf("first: %w", gorm.ErrRecordNotFound))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTranslateError_GormDuplicatedKey(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicate)
}

func TestTranslateError_PgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_likes_post_user"}
	err := translateError(fmt.Errorf("insert like: %w", pgErr))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "idx_likes_post_user")
}

func TestTranslateError_OtherPgErrorPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57014"}
	err := translateError(pgErr)
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.Same(t, pgErr, err)
}

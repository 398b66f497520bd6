package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRecipeRepository_DeleteCascade_OwnerRemovesAllDependents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)
	ownerID := uint(7)

	// One transaction: the owner-filtered recipe delete first, then the
	// dependent favorites, ratings and comments. Afterwards no row in any
	// dependent table references the recipe id.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `recipes` WHERE id = ? AND user_id = ?")).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `favorites` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `ratings` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	affected, err := repo.DeleteCascade(context.Background(), 1, &ownerID)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_DeleteCascade_AdminPathSkipsOwnerFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `recipes` WHERE id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `favorites` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `ratings` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments` WHERE recipe_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.DeleteCascade(context.Background(), 1, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_DeleteCascade_NonOwnerTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)
	ownerID := uint(8)

	// Zero rows on the owner-filtered recipe delete aborts the cascade:
	// no child deletes are issued and the caller sees zero affected rows.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `recipes` WHERE id = ? AND user_id = ?")).
		WithArgs(1, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.DeleteCascade(context.Background(), 1, &ownerID)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_UpdateOwned_FiltersOnOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `recipes` SET .+ WHERE id = \\? AND user_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.UpdateOwned(context.Background(), 1, 8, map[string]interface{}{"title": "hijack"})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repositories

import (
	"fmt"
	"testing"

	"folio/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newSubmission(ref string) *models.ContactSubmission {
	s := &models.ContactSubmission{
		Reference: ref,
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Message:   "Hello from the test suite",
	}
	s.BeforeCreate()
	return s
}

func TestGetNextID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, SubmissionSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, SubmissionSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "seq:other")
			assert.NoError(t, err)
			assert.Equal(t, 1, id, "Other sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestSubmissionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerSubmissionRepository(db)

	t.Run("create and get submission", func(t *testing.T) {
		s := newSubmission("ref-create")
		require.NoError(t, repo.Create(s))
		assert.Greater(t, s.ID, 0)

		got, err := repo.GetByID(s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Name, got.Name)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("get by reference", func(t *testing.T) {
		s := newSubmission("ref-lookup")
		require.NoError(t, repo.Create(s))

		got, err := repo.GetByReference("ref-lookup")
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)

		_, err = repo.GetByReference("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update submission", func(t *testing.T) {
		s := newSubmission("ref-update")
		require.NoError(t, repo.Create(s))

		s.Transition(models.StatusSent, "")
		require.NoError(t, repo.Update(s))

		got, err := repo.GetByID(s.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, got.Status)
	})

	t.Run("update missing submission", func(t *testing.T) {
		err := repo.Update(&models.ContactSubmission{ID: 9999})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete submission", func(t *testing.T) {
		s := newSubmission("ref-delete")
		require.NoError(t, repo.Create(s))
		require.NoError(t, repo.Delete(s.ID))

		_, err := repo.GetByID(s.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.GetByReference("ref-delete")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(s.ID), ErrNotFound)
	})
}

func TestSubmissionRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerSubmissionRepository(db)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Create(newSubmission(fmt.Sprintf("ref-%d", i))))
	}

	t.Run("newest first", func(t *testing.T) {
		list, err := repo.List(3, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, 12, list[0].ID)
		assert.Equal(t, 11, list[1].ID)
		assert.Equal(t, 10, list[2].ID)
	})

	t.Run("offset crosses digit boundary", func(t *testing.T) {
		list, err := repo.List(5, 9)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, 3, list[0].ID)
		assert.Equal(t, 1, list[2].ID)
	})

	t.Run("zero limit lists all", func(t *testing.T) {
		list, err := repo.List(0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 12)
	})
}

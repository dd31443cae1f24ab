package repositories

import (
	"errors"
	"fmt"

	"folio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSubmissionRepository implements SubmissionRepository using BadgerDB
type BadgerSubmissionRepository struct {
	db *badger.DB
}

// NewBadgerSubmissionRepository creates a new BadgerSubmissionRepository
func NewBadgerSubmissionRepository(db *badger.DB) *BadgerSubmissionRepository {
	return &BadgerSubmissionRepository{db: db}
}

// Create stores a new submission and its reference index entry
func (r *BadgerSubmissionRepository) Create(submission *models.ContactSubmission) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, SubmissionSeqKey)
		if err != nil {
			return err
		}
		submission.ID = id

		data, err := marshalEntity(submission)
		if err != nil {
			return err
		}
		if err := txn.Set(submissionKey(id), data); err != nil {
			return err
		}
		if submission.Reference == "" {
			return nil
		}
		return txn.Set(submissionRefKey(submission.Reference), []byte(fmt.Sprint(id)))
	})
}

// GetByID retrieves a submission by ID
func (r *BadgerSubmissionRepository) GetByID(id int) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.View(func(txn *badger.Txn) error {
		return getSubmission(txn, id, &submission)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetByReference retrieves a submission by the reference shown to the visitor
func (r *BadgerSubmissionRepository) GetByReference(ref string) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(submissionRefKey(ref))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		err = item.Value(func(val []byte) error {
			_, err := fmt.Sscan(string(val), &id)
			return err
		})
		if err != nil {
			return fmt.Errorf("corrupt reference index for %s: %w", ref, err)
		}
		return getSubmission(txn, id, &submission)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// List retrieves a page of submissions, newest first
func (r *BadgerSubmissionRepository) List(limit, offset int) ([]*models.ContactSubmission, error) {
	submissions := []*models.ContactSubmission{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(SubmissionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		count := 0
		seek := append([]byte(SubmissionKeyPrefix), 0xFF)
		for it.Seek(seek); it.Valid(); it.Next() {
			if count < offset {
				count++
				continue
			}
			if limit > 0 && count >= offset+limit {
				break
			}

			var submission models.ContactSubmission
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &submission)
			})
			if err != nil {
				return err
			}
			submissions = append(submissions, &submission)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// Update updates an existing submission
func (r *BadgerSubmissionRepository) Update(submission *models.ContactSubmission) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := submissionKey(submission.ID)

		// Verify submission exists
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(submission)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a submission and its reference index entry
func (r *BadgerSubmissionRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var submission models.ContactSubmission
		if err := getSubmission(txn, id, &submission); err != nil {
			return err
		}
		if submission.Reference != "" {
			if err := txn.Delete(submissionRefKey(submission.Reference)); err != nil {
				return err
			}
		}
		return txn.Delete(submissionKey(id))
	})
}

func getSubmission(txn *badger.Txn, id int, dst *models.ContactSubmission) error {
	item, err := txn.Get(submissionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, dst)
	})
}

package boltdb

import (
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// RecordRepository stores raw client records (session, navigation summary).
type RecordRepository struct {
	db *bbolt.DB
}

func NewRecordRepository(db *bbolt.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (repo *RecordRepository) GetRecord(key string) ([]byte, error) {
	var out []byte
	err := repo.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(clientBucket)
		if b == nil {
			return errors.Errorf("bucket %s not found", clientBucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid for the life of the transaction
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

func (repo *RecordRepository) PutRecord(key string, value []byte) error {
	return repo.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(clientBucket)
		if b == nil {
			return errors.Errorf("bucket %s not found", clientBucket)
		}
		return b.Put([]byte(key), value)
	})
}

func (repo *RecordRepository) DeleteRecord(key string) error {
	return repo.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(clientBucket)
		if b == nil {
			return errors.Errorf("bucket %s not found", clientBucket)
		}
		return b.Delete([]byte(key))
	})
}

package inmemdb

// RecordRepository keeps client records in memory. It satisfies session.Repository.
type RecordRepository struct {
	db *recordTable
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db.records}
}

func (repo *RecordRepository) GetRecord(key string) ([]byte, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	val, ok := repo.db.table[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), val...), nil
}

func (repo *RecordRepository) PutRecord(key string, value []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[key] = append([]byte(nil), value...)
	return nil
}

func (repo *RecordRepository) DeleteRecord(key string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, key)
	return nil
}

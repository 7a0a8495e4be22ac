package inmemdb

import "sync"

type (
	DB struct {
		records *recordTable
	}

	recordTable struct {
		sync.RWMutex
		table map[string][]byte
	}
)

func Open() *DB {
	return &DB{
		records: &recordTable{table: make(map[string][]byte)},
	}
}

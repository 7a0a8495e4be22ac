package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository(t *testing.T) {
	repo := NewRecordRepository(Open())

	got, err := repo.GetRecord("k")
	require.NoError(t, err)
	assert.Nil(t, got)

	val := []byte("v1")
	require.NoError(t, repo.PutRecord("k", val))
	val[0] = 'x'

	got, err = repo.GetRecord("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got), "stored value is a copy")

	got[0] = 'y'
	again, _ := repo.GetRecord("k")
	assert.Equal(t, "v1", string(again), "returned value is a copy")

	require.NoError(t, repo.DeleteRecord("k"))
	got, err = repo.GetRecord("k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

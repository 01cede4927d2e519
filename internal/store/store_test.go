package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestLoadListMissingKeyIsEmpty(t *testing.T) {
	s := NewMemoryStore()

	items, err := LoadList[item](context.Background(), s, KeyUsers)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaveAndLoadList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveList(ctx, s, KeyFamilies, []item{{ID: "f1", Name: "Família Melo"}}))

	raw, err := s.Get(ctx, KeyFamilies)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f1","name":"Família Melo"}]`, string(raw))

	items, err := LoadList[item](ctx, s, KeyFamilies)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "f1", Name: "Família Melo"}}, items)
}

func TestSaveListNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveList[item](ctx, s, KeyReports, nil))
	raw, err := s.Get(ctx, KeyReports)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestLoadListCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, KeyUsers, []byte("{not json")))

	_, err := LoadList[item](ctx, s, KeyUsers)
	assert.ErrorContains(t, err, "failed to decode famBalanceUsers")
}

func TestLoadAndSaveString(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v, err := LoadString(ctx, s, KeyCurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, SaveString(ctx, s, KeyCurrentUserID, "u1"))
	v, err = LoadString(ctx, s, KeyCurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)
}

func TestMemoryStoreKeysAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "b", []byte("2")))
	require.NoError(t, s.Set(ctx, "a", []byte("1")))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

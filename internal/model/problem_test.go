package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_FromArray(t *testing.T) {
	var list StringList
	require.NoError(t, json.Unmarshal([]byte(`["go", "  sql  ", "", "react"]`), &list))
	assert.Equal(t, StringList{"go", "sql", "react"}, list)
}

func TestStringList_FromNewlineString(t *testing.T) {
	var list StringList
	require.NoError(t, json.Unmarshal([]byte(`"first requirement\nsecond requirement\n\n  third  "`), &list))
	assert.Equal(t, StringList{"first requirement", "second requirement", "third"}, list)
}

func TestStringList_RejectsOtherShapes(t *testing.T) {
	var list StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &list))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &list))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Web3"))
	assert.True(t, IsValidCategory("AI/ML"))
	assert.False(t, IsValidCategory("web3"))
	assert.False(t, IsValidCategory("Other"))
}

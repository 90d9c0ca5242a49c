package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("NFT_GRINDER_TEST_SET", "value")
	t.Setenv("NFT_GRINDER_TEST_BLANK", "  ")

	assert.Equal(t, "value", GetEnv("NFT_GRINDER_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("NFT_GRINDER_TEST_BLANK", "fallback"))
	assert.Equal(t, "fallback", GetEnv("NFT_GRINDER_TEST_UNSET_VARIABLE", "fallback"))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList())
	assert.Nil(t, SplitList("", " , "))
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b", "c"))
	assert.Equal(t, []string{"a", "a"}, SplitList("a,a"))
}

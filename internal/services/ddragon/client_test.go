package ddragon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatPerkAliases(t *testing.T) {
	assert.Equal(t, []string{"adaptive force", "adaptive force flex"}, statPerkAliases(5008))
	assert.Equal(t, []string{"attack speed"}, statPerkAliases(5005))
	assert.Equal(t, []string{"health scaling", "health scaling def"}, statPerkAliases(5001))
	assert.Equal(t, []string{"tenacity", "tenacity and slow resist"}, statPerkAliases(5013))
	assert.Nil(t, statPerkAliases(5004), "unassigned ids in the shard range map to nothing")
	assert.Nil(t, statPerkAliases(8112), "tree runes are not stat shards")
}

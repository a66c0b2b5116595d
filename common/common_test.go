package common_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-triangle/common"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", common.Coalesce("", "b", "c"))
	assert.Equal(t, 0, common.Coalesce(0, 0))
	assert.Equal(t, 3, common.Coalesce(3))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, common.SliceToBytes([]float32(nil)))

	b := common.SliceToBytes([]float32{1, -0.5})
	assert.Len(t, b, 8)
	assert.Equal(t, math.Float32bits(1), binary.NativeEndian.Uint32(b[0:4]))
	assert.Equal(t, math.Float32bits(-0.5), binary.NativeEndian.Uint32(b[4:8]))
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "A", common.KeyName(common.KeyA))
	assert.Equal(t, "7", common.KeyName(55))
	assert.Equal(t, "space", common.KeyName(common.KeySpace))
	assert.Equal(t, "escape", common.KeyName(common.KeyEsc))
	assert.Equal(t, "key(999)", common.KeyName(999))
}

func TestKeyNameBrowserCodes(t *testing.T) {
	assert.Equal(t, "escape", common.KeyName(27))
	assert.Equal(t, "enter", common.KeyName(13))
	assert.Equal(t, "backspace", common.KeyName(8))
	assert.Equal(t, "shift", common.KeyName(16))
}

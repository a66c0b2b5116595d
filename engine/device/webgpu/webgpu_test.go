//go:build !js

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

func TestErrorFlagsAreSticky(t *testing.T) {
	d := &gpuDevice{}
	for range 3600 {
		d.fail(device.InvalidFramebufferOperation)
		d.fail(device.InvalidOperation)
	}

	assert.Len(t, d.errors, 2)
	assert.Equal(t, device.InvalidFramebufferOperation, d.Error())
	assert.Equal(t, device.InvalidOperation, d.Error())
	assert.Equal(t, device.NoError, d.Error())

	d.fail(device.InvalidOperation)
	assert.Equal(t, device.InvalidOperation, d.Error(), "a reported flag can be raised again")
}

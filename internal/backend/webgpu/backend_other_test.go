//go:build !windows

package webgpu

import (
	"testing"

	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestNew_NotAvailable(t *testing.T) {
	b, err := New()
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.False(t, IsAvailable())

	var stub Backend
	assert.Equal(t, tensor.WebGPU, stub.Device())
	assert.ErrorIs(t, stub.ScalarTransform(ops.Add, nil, nil, 0, nil), ErrNotAvailable)
}

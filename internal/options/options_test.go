package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// encoderConfig mimics the shape of the configurable constructors that use
// this package: a couple of settable knobs, one of which can reject input.
type encoderConfig struct {
	byteOrder string
	stride    int
}

func (c *encoderConfig) setStride(n int) error {
	if n <= 0 {
		return errors.New("stride must be positive")
	}
	c.stride = n

	return nil
}

func withByteOrder(order string) Option[*encoderConfig] {
	return NoError(func(c *encoderConfig) {
		c.byteOrder = order
	})
}

func withStride(n int) Option[*encoderConfig] {
	return New(func(c *encoderConfig) error {
		return c.setStride(n)
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &encoderConfig{}

	err := Apply(cfg, withByteOrder("little"), withStride(5), withByteOrder("big"))
	require.NoError(t, err)
	require.Equal(t, "big", cfg.byteOrder)
	require.Equal(t, 5, cfg.stride)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &encoderConfig{}

	err := Apply(cfg, withStride(3), withStride(-1), withByteOrder("big"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stride must be positive")
	require.Equal(t, 3, cfg.stride)
	require.Equal(t, "", cfg.byteOrder, "options past the failure must not apply")
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &encoderConfig{stride: 1}

	require.NoError(t, Apply(cfg))
	require.Equal(t, &encoderConfig{stride: 1}, cfg)
}

func TestNoError_NeverFails(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })

	require.NoError(t, opt.apply(&n))
	require.Equal(t, 42, n)
}

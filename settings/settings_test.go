package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, uint32(80*1024), cfg.Headers.Bytes.Maximal)
	require.NotZero(t, cfg.Headers.Bytes.Default)
	require.NotZero(t, cfg.Headers.Count.Default)
	require.NotZero(t, cfg.StartLine.Default)
}

func TestFill(t *testing.T) {
	cfg := Fill(Config{
		Headers: Headers{Bytes: HeaderBytes{Maximal: 4096}},
	})

	require.Equal(t, uint32(4096), cfg.Headers.Bytes.Maximal)
	require.Equal(t, Default().Headers.Bytes.Default, cfg.Headers.Bytes.Default)
	require.Equal(t, Default().Headers.Count, cfg.Headers.Count)
	require.Equal(t, Default().StartLine, cfg.StartLine)
}

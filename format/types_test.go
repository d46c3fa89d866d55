package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	require.Equal(t, "Int", TagInt.String())
	require.Equal(t, "String", TagString.String())
	require.Equal(t, "List", TagList.String())
	require.Equal(t, "Object", TagObject.String())
	require.Equal(t, "Unknown", Tag(0x9).String())

	require.True(t, TagList.IsValid())
	require.False(t, Tag(0).IsValid())
	require.False(t, Tag(5).IsValid())

	require.True(t, TagInt.IsElementTag())
	require.True(t, TagString.IsElementTag())
	require.True(t, TagObject.IsElementTag())
	require.False(t, TagList.IsElementTag())
}

func TestContentEncoding(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		parsed, ok := ParseContentEncoding(c.ContentEncoding())
		require.True(t, ok, c.String())
		require.Equal(t, c, parsed)
	}

	parsed, ok := ParseContentEncoding("")
	require.True(t, ok)
	require.Equal(t, CompressionNone, parsed)

	_, ok = ParseContentEncoding("br")
	require.False(t, ok)
}

package galacticbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/value"
)

func TestMarshalUnmarshal(t *testing.T) {
	msg := NewObject(
		F("user_id", NewInt(1001)),
		F("name", NewStr("Alice")),
		F("scores", NewList(TagInt, NewInt(100), NewInt(200), NewInt(300))),
		F("trades", NewList(TagObject,
			NewObject(F("id", NewInt(1)), F("price", NewInt(100))),
		)),
	)

	data, err := Marshal(msg)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.True(t, value.Equal(msg, back), "got %s", back)
}

func TestEncodeText_ScalarScenario(t *testing.T) {
	data, err := EncodeText(`user_id=1001 name=Alice`)
	require.NoError(t, err)

	require.Equal(t,
		"01 02 00 22 07 75 73 65 72 5F 69 64 01 00 00 00 00 00 00 03 E9 "+
			"04 6E 61 6D 65 02 00 05 41 6C 69 63 65",
		FormatHex(data))
}

func TestParseArgs(t *testing.T) {
	msg, err := ParseArgs([]string{"user_id=1001", "tags=[a,", "b]"})
	require.NoError(t, err)

	tags, ok := msg.GetList("tags")
	require.True(t, ok)
	require.Equal(t, TagString, tags.ElemType)
	require.Equal(t, 2, tags.Len())

	_, err = ParseText("not-a-field")
	require.ErrorIs(t, err, errs.ErrInvalidGrammarToken)
}

func TestUnmarshal_Errors(t *testing.T) {
	_, err := Unmarshal([]byte{0x02, 0x00, 0x00, 0x04})
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)

	_, err = Unmarshal([]byte{0x01, 0x00})
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestFormatHex(t *testing.T) {
	require.Equal(t, "", FormatHex(nil))
	require.Equal(t, "0A FF", FormatHex([]byte{0x0a, 0xff}))
}

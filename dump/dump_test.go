package dump

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c53mike/wuffs/token"
)

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})

	tok := token.Token{Length: 4, VBC: token.Literal, VBD: token.LiteralTrue}
	require.NoError(t, w.WriteToken(0, tok))

	want := []byte{
		0x00, 0x00, 0x00, 0x00, // pos
		0x00, 0x04, // len
		0x00, 0x00, // link bits
		0x00, 0x00, 0x00, 0x00, // vmajor
		0x04,             // vbc
		0x00, 0x00, 0x08, // vbd
	}
	require.Equal(t, want, buf.Bytes())
}

func TestWriteRecordVMajor(t *testing.T) {
	vmajor, ok := token.PackTag("json")
	require.True(t, ok)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})
	tok := token.Token{Length: 1, LinkPrev: true, VMajor: vmajor, VMinor: 0xABCDEF}
	require.NoError(t, w.WriteToken(0x1234, tok))

	want := []byte{
		0x00, 0x00, 0x12, 0x34,
		0x00, 0x01,
		0x01, 0x00,
		0x00, 0x12, 0x42, 0x65, // "json" in base 38
		0x00, 0xAB, 0xCD, 0xEF,
	}
	require.Equal(t, want, buf.Bytes())
}

func TestWriteHuman(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{HumanReadable: true})

	tok := token.Token{Length: 4, VBC: token.Literal, VBD: token.LiteralTrue}
	require.NoError(t, w.WriteToken(0, tok))

	require.Equal(t,
		"pos=0x00000000  len=0x0004  link=0b00  vbc=4:Literal..........  vbd=0x000008\n",
		buf.String())
}

func TestWriteHumanVMajor(t *testing.T) {
	vmajor, ok := token.PackTag("json")
	require.True(t, ok)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{HumanReadable: true})
	tok := token.Token{Length: 2, LinkNext: true, VMajor: vmajor, VMinor: 7}
	require.NoError(t, w.WriteToken(16, tok))

	require.Equal(t,
		"pos=0x00000010  len=0x0002  link=0b01  vmajor=0x124265:json  vminor=0x000007\n",
		buf.String())
}

func TestElision(t *testing.T) {
	filler := token.Token{Length: 2}
	comment := token.Token{Length: 5, VBC: token.Filler, VBD: token.FillerCommentLine}

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})
	require.NoError(t, w.WriteToken(0, filler))
	require.Zero(t, buf.Len(), "valueless filler should be elided")
	require.NoError(t, w.WriteToken(2, comment))
	require.Equal(t, 16, buf.Len(), "comments carry value and are emitted")

	buf.Reset()
	w = NewWriter(&buf, Options{AllTokens: true})
	require.NoError(t, w.WriteToken(0, filler))
	require.Equal(t, 16, buf.Len())
}

func TestWriteError(t *testing.T) {
	w := NewWriter(failWriter{}, Options{})
	err := w.WriteToken(0, token.Token{Length: 1, VBC: token.Structure, VBD: token.StructurePush})
	require.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

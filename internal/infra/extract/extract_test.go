package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPassthrough(t *testing.T) {
	e := New()
	ctx := context.Background()

	for _, name := range []string{"", "a.txt", "A.TXT", "notes.md", "body.text"} {
		out, err := e.Text(ctx, name, []byte("plain contract body"))
		require.NoError(t, err, name)
		assert.Equal(t, "plain contract body", out)
	}
}

func TestTextRejectsBinaryAsText(t *testing.T) {
	_, err := New().Text(context.Background(), "a.txt", []byte{0xff, 0xfe, 0x00})
	assert.Error(t, err)
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := New().Text(context.Background(), "contract.docx", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

package usecase

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	input := "short\n" + strings.Repeat("y", 40) + "\n\nlast"
	r := bufio.NewReaderSize(strings.NewReader(input), 16)

	type line struct {
		text    string
		tooLong bool
	}
	var got []line
	for {
		b, tooLong, err := readLine(r, 32)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
		}
		got = append(got, line{string(b), tooLong})
		if err != nil {
			break
		}
	}

	assert.Equal(t, []line{
		{"short\n", false},
		{"", true},
		{"\n", false},
		{"last", false},
	}, got)
}

func TestReadLine_exactLimitFits(t *testing.T) {
	r := bufio.NewReaderSize(strings.NewReader(strings.Repeat("z", 32)+"\n"), 16)

	b, tooLong, err := readLine(r, 32)
	require.NoError(t, err)
	assert.False(t, tooLong)
	assert.Len(t, b, 33)

	b, _, err = readLine(r, 32)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, b)
}

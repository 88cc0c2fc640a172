package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatementsKeepsTrailingBlankPiece(t *testing.T) {
	got := splitStatements("create table a (id int);\n\ncreate table b (id int);\n")
	assert.Len(t, got, 3)
}

func TestFirstLineTruncatesLongSingleLineInput(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}
	got := firstLine(long)
	assert.LessOrEqual(t, len(got), 63)
}

func TestFirstLineStopsAtNewline(t *testing.T) {
	assert.Equal(t, "create table a (", firstLine("create table a (\n  id int\n)"))
}

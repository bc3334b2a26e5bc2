package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, src string) []Block {
	t.Helper()
	blocks, err := Assemble(ClassifyAll(src))
	require.NoError(t, err)
	return blocks
}

func TestAssemble_GroupsConsecutiveListItems(t *testing.T) {
	blocks := assemble(t, "- one\n- two\n- three")
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(List)
	require.True(t, ok, "expected List, got %T", blocks[0])
	require.Equal(t, ListBullet, list.Kind)
	require.Len(t, list.Items, 3)
	require.Equal(t, "two", spanText(list.Items[1].Spans))
}

func TestAssemble_ListKindChangeStartsNewBlock(t *testing.T) {
	blocks := assemble(t, "- bullet\n1. numbered\n- [ ] box")
	require.Len(t, blocks, 3)

	kinds := []ListKind{ListBullet, ListNumbered, ListCheckbox}
	for i, want := range kinds {
		list, ok := blocks[i].(List)
		require.True(t, ok, "block %d: expected List, got %T", i, blocks[i])
		require.Equal(t, want, list.Kind, "block %d", i)
	}
}

func TestAssemble_BlankTerminatesListRun(t *testing.T) {
	blocks := assemble(t, "- one\n\n- two")
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		_, ok := b.(List)
		require.True(t, ok, "expected List, got %T", b)
	}
}

func TestAssemble_TableDetection(t *testing.T) {
	blocks := assemble(t, "| A | B |\n|---|---|\n| 1 | 2 |")
	require.Len(t, blocks, 1)

	table, ok := blocks[0].(Table)
	require.True(t, ok, "expected Table, got %T", blocks[0])
	require.Len(t, table.Rows, 2)
	require.Equal(t, "A", table.Rows[0][0].Text())
	require.Equal(t, "B", table.Rows[0][1].Text())
	require.Equal(t, "1", table.Rows[1][0].Text())
	require.Equal(t, "2", table.Rows[1][1].Text())
}

func TestAssemble_RowWithoutSeparatorIsParagraph(t *testing.T) {
	blocks := assemble(t, "| A | B |")
	require.Len(t, blocks, 1)

	para, ok := blocks[0].(Paragraph)
	require.True(t, ok, "expected Paragraph, got %T", blocks[0])
	require.Equal(t, "| A | B |", spanText(para.Spans))
}

func TestAssemble_LoneSeparatorIsParagraph(t *testing.T) {
	blocks := assemble(t, "|---|---|")
	require.Len(t, blocks, 1)
	_, ok := blocks[0].(Paragraph)
	require.True(t, ok, "expected Paragraph, got %T", blocks[0])
}

func TestAssemble_SeparatorColumnMismatchFails(t *testing.T) {
	_, err := Assemble(ClassifyAll("| A | B |\n|---|\n| 1 | 2 |"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedTable), "got %v", err)
}

func TestAssemble_NestedListFailsFast(t *testing.T) {
	_, err := Assemble(ClassifyAll("- top\n  - nested"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupportedBlock), "got %v", err)
}

func TestAssemble_BlankLinesDropped(t *testing.T) {
	blocks := assemble(t, "# Title\n\n\n\nbody")
	require.Len(t, blocks, 2)
	_, ok := blocks[0].(Heading)
	require.True(t, ok)
	_, ok = blocks[1].(Paragraph)
	require.True(t, ok)
}

func TestAssemble_RuleBecomesOwnBlock(t *testing.T) {
	blocks := assemble(t, "before\n---\nafter")
	require.Len(t, blocks, 3)
	_, ok := blocks[1].(Rule)
	require.True(t, ok, "expected Rule, got %T", blocks[1])
}

func TestAssemble_TableEndsAtNonRowLine(t *testing.T) {
	blocks := assemble(t, "| A |\n|---|\n| 1 |\nplain text")
	require.Len(t, blocks, 2)
	table, ok := blocks[0].(Table)
	require.True(t, ok)
	require.Len(t, table.Rows, 2)
	_, ok = blocks[1].(Paragraph)
	require.True(t, ok)
}

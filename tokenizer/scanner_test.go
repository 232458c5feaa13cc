package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeField(t *testing.T) {
	result, err := Tokenize("name: Jane", Options{})
	require.NoError(t, err)
	require.Len(t, result.Instructions, 1)

	in := result.Instructions[0]
	assert.Equal(t, Field, in.Kind)
	assert.Equal(t, "name", in.Name)
	require.NotNil(t, in.Value)
	assert.Equal(t, "Jane", *in.Value)
	assert.Equal(t, 10, in.Length)

	require.NotNil(t, in.Ranges.Name)
	assert.Equal(t, Range{0, 4}, *in.Ranges.Name)
	require.NotNil(t, in.Ranges.NameOperator)
	assert.Equal(t, Range{4, 5}, *in.Ranges.NameOperator)
	require.NotNil(t, in.Ranges.Value)
	assert.Equal(t, Range{6, 10}, *in.Ranges.Value)
}

func TestTokenizeSectionWithTemplate(t *testing.T) {
	result, err := Tokenize("# cities expanded < cities", Options{})
	require.NoError(t, err)
	require.Len(t, result.Instructions, 1)

	in := result.Instructions[0]
	assert.Equal(t, Section, in.Kind)
	assert.Equal(t, 1, in.Depth)
	assert.Equal(t, "cities expanded", in.Name)
	require.NotNil(t, in.Template)
	assert.Equal(t, "cities", *in.Template)
	assert.False(t, in.DeepCopy)

	require.NotNil(t, in.Ranges.SectionOperator)
	assert.Equal(t, Range{0, 1}, *in.Ranges.SectionOperator)
	require.NotNil(t, in.Ranges.Name)
	assert.Equal(t, Range{2, 17}, *in.Ranges.Name)
	require.NotNil(t, in.Ranges.CopyOperator)
	assert.Equal(t, Range{18, 19}, *in.Ranges.CopyOperator)
	require.NotNil(t, in.Ranges.Template)
	assert.Equal(t, Range{20, 26}, *in.Ranges.Template)
}

func TestTokenizeBlock(t *testing.T) {
	result, err := Tokenize("-- body\nhello\nworld\n-- body", Options{})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Instructions, 4)

	opener := result.Instructions[0]
	assert.Equal(t, Block, opener.Kind)
	assert.Equal(t, "body", opener.Name)
	assert.Equal(t, 7, opener.Length)

	c0 := result.Instructions[1]
	assert.Equal(t, BlockContent, c0.Kind)
	assert.Equal(t, 8, c0.Index)
	assert.Equal(t, 5, c0.Length)

	c1 := result.Instructions[2]
	assert.Equal(t, BlockContent, c1.Kind)
	assert.Equal(t, 14, c1.Index)
	assert.Equal(t, 5, c1.Length)

	terminator := result.Instructions[3]
	assert.Equal(t, BlockTerminator, terminator.Kind)
	assert.Equal(t, "body", terminator.Name)
}

func TestTokenizeContinuation(t *testing.T) {
	result, err := Tokenize("key: first\n| second", Options{})
	require.NoError(t, err)
	require.Len(t, result.Instructions, 2)

	field := result.Instructions[0]
	assert.Equal(t, Field, field.Kind)
	assert.Equal(t, "key", field.Name)
	require.NotNil(t, field.Value)
	assert.Equal(t, "first", *field.Value)

	cont := result.Instructions[1]
	assert.Equal(t, Continuation, cont.Kind)
	assert.Equal(t, "\n", cont.Separator)
	require.NotNil(t, cont.Value)
	assert.Equal(t, "second", *cont.Value)
}

func TestTokenizeEscapedFieldsetEntry(t *testing.T) {
	result, err := Tokenize("values:\n`a:b` = x", Options{})
	require.NoError(t, err)
	require.Len(t, result.Instructions, 2)

	name := result.Instructions[0]
	assert.Equal(t, Name, name.Kind)
	assert.Equal(t, "values", name.Name)

	entry := result.Instructions[1]
	assert.Equal(t, FieldsetEntry, entry.Kind)
	assert.Equal(t, "a:b", entry.Name)
	require.NotNil(t, entry.Value)
	assert.Equal(t, "x", *entry.Value)
	assert.NotNil(t, entry.Ranges.EscapeBeginOperator)
	assert.NotNil(t, entry.Ranges.EscapeEndOperator)
}

func TestTokenizeInvalidLine(t *testing.T) {
	result, err := Tokenize("$$$", Options{})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, Diagnostic{Key: InvalidLine, Line: 0}, result.Diagnostics[0])
	assert.LessOrEqual(t, len(result.Instructions), 1)
}

func TestTokenizeEmptyInputNoNewline(t *testing.T) {
	result, err := Tokenize("", Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Instructions)
	assert.Empty(t, result.Diagnostics)
}

func TestTokenizeEmptyInputSingleNewline(t *testing.T) {
	// "\n" contains one real (empty) line at index 0 plus the trailing-newline
	// sentinel at index 1 -- see DESIGN.md's note on this boundary case.
	result, err := Tokenize("\n", Options{})
	require.NoError(t, err)
	require.Len(t, result.Instructions, 2)
	assert.Equal(t, EmptyLine, result.Instructions[0].Kind)
	assert.Equal(t, 0, result.Instructions[0].Index)
	assert.Equal(t, EmptyLine, result.Instructions[1].Kind)
	assert.Equal(t, 1, result.Instructions[1].Index)
}

func TestTokenizeHashWithNoNameIsInvalid(t *testing.T) {
	result, err := Tokenize("#", Options{})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, InvalidLine, result.Diagnostics[0].Key)
}

func TestTokenizeUnterminatedEscapedName(t *testing.T) {
	result, err := Tokenize("`name: value", Options{})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, UnterminatedEscapedName, result.Diagnostics[0].Key)
}

func TestTokenizeBlockSameDashCountDifferentNameIsUnterminated(t *testing.T) {
	result, err := Tokenize("-- body\nhello\n-- other", Options{})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, UnterminatedBlock, result.Diagnostics[0].Key)
	assert.Equal(t, "body", result.Diagnostics[0].Name)
}

func TestTokenizeLineIndexingMatchesOptions(t *testing.T) {
	result, err := Tokenize("$$$", Options{ZeroIndexed: true})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 0, result.Diagnostics[0].Line)

	opts := Options{}
	assert.Equal(t, 1, opts.Indexing())
	assert.Equal(t, 0, Options{ZeroIndexed: true}.Indexing())
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"name: Jane",
		"# cities expanded < cities",
		"-- body\nhello\nworld\n-- body",
		"key: first\n| second",
		"values:\n`a:b` = x",
		"title: Sample Project\ntags:\n- fast\n- reliable\n",
	}

	for _, input := range inputs {
		result, err := Tokenize(input, Options{})
		require.NoError(t, err)

		var reconstructed string
		for i, in := range result.Instructions {
			if i == len(result.Instructions)-1 && in.Kind == EmptyLine && in.Length == 0 && in.Index == len(input) {
				continue
			}
			if i > 0 {
				reconstructed += "\n"
			}
			reconstructed += input[in.Index : in.Index+in.Length]
		}

		trimmed := input
		for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\n' {
			trimmed = trimmed[:len(trimmed)-1]
		}
		assert.Equal(t, trimmed, reconstructed, "round-trip mismatch for %q", input)
	}
}

func TestTokenizeIsIdempotentOverReconstruction(t *testing.T) {
	input := "title: Sample Project\ntags:\n- fast\n- reliable\n"
	first, err := Tokenize(input, Options{})
	require.NoError(t, err)

	var reconstructed string
	for i, in := range first.Instructions {
		if i == len(first.Instructions)-1 && in.Kind == EmptyLine && in.Length == 0 && in.Index == len(input) {
			continue
		}
		if i > 0 {
			reconstructed += "\n"
		}
		reconstructed += input[in.Index : in.Index+in.Length]
	}
	reconstructed += "\n"

	second, err := Tokenize(reconstructed, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

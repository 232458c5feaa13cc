// Package tokenizer turns a line-oriented configuration document into an
// ordered stream of instructions annotated with byte-precise source spans.
//
// The package owns exactly the part of the notation described as "the
// core": the single-line grammar and the cursor-driven scan loop. Building
// a semantic document tree out of the instruction stream (resolving
// `< template` copies, rejecting duplicate fieldset entries, coercing
// values) is left to a downstream parser that consumes this package's
// output.
package tokenizer

import "fmt"

// Kind identifies which line-shape an Instruction was produced from.
type Kind int

const (
	EmptyLine Kind = iota
	Field
	Name
	ListItem
	FieldsetEntry
	Continuation
	Section
	Block
	BlockContent
	BlockTerminator
	Comment
)

func (k Kind) String() string {
	switch k {
	case EmptyLine:
		return "EMPTY_LINE"
	case Field:
		return "FIELD"
	case Name:
		return "NAME"
	case ListItem:
		return "LIST_ITEM"
	case FieldsetEntry:
		return "FIELDSET_ENTRY"
	case Continuation:
		return "CONTINUATION"
	case Section:
		return "SECTION"
	case Block:
		return "BLOCK"
	case BlockContent:
		return "BLOCK_CONTENT"
	case BlockTerminator:
		return "BLOCK_TERMINATOR"
	case Comment:
		return "COMMENT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Range is a half-open byte interval [Start, End), measured relative to the
// start of the line the owning Instruction describes -- never relative to
// the whole document. It is the unit the spec calls a "line-local range".
type Range struct {
	Start, End int
}

// Len reports the byte width of the range.
func (r Range) Len() int { return r.End - r.Start }

// Ranges holds the subset of named spans that apply to one Instruction.
// Only the fields relevant to the Instruction's Kind are ever set; every
// other field stays nil. This is a fresh value per Instruction, never a
// shared, mutated accumulator -- see DESIGN.md's discussion of the source's
// "shared ranges dictionary" antipattern.
type Ranges struct {
	Name                *Range
	NameOperator        *Range
	EscapeBeginOperator *Range
	EscapeEndOperator   *Range
	Value               *Range
	ItemOperator        *Range
	EntryOperator       *Range
	ContinuationOperator *Range
	SectionOperator     *Range
	CopyOperator        *Range
	DeepCopyOperator    *Range
	Template            *Range
	BlockOperator       *Range
	Content             *Range
	CommentOperator     *Range
	Comment             *Range
}

// Present returns only the non-nil ranges, keyed by role name. It exists
// for tests and tooling that need to walk "whatever ranges this
// instruction happens to carry" without a long chain of nil checks.
func (r Ranges) Present() map[string]Range {
	out := make(map[string]Range, 8)
	add := func(name string, v *Range) {
		if v != nil {
			out[name] = *v
		}
	}
	add("Name", r.Name)
	add("NameOperator", r.NameOperator)
	add("EscapeBeginOperator", r.EscapeBeginOperator)
	add("EscapeEndOperator", r.EscapeEndOperator)
	add("Value", r.Value)
	add("ItemOperator", r.ItemOperator)
	add("EntryOperator", r.EntryOperator)
	add("ContinuationOperator", r.ContinuationOperator)
	add("SectionOperator", r.SectionOperator)
	add("CopyOperator", r.CopyOperator)
	add("DeepCopyOperator", r.DeepCopyOperator)
	add("Template", r.Template)
	add("BlockOperator", r.BlockOperator)
	add("Content", r.Content)
	add("CommentOperator", r.CommentOperator)
	add("Comment", r.Comment)
	return out
}

// Instruction is one tokenizer output record. Index and Length are always
// document-absolute/byte-width; every Range inside Ranges is line-local
// (relative to Index).
//
// Not every field applies to every Kind -- see the table in spec.md's data
// model. Fields that don't apply to the Instruction's Kind are left at
// their zero value.
type Instruction struct {
	Kind   Kind
	Index  int // absolute byte offset of the line start
	Line   int // 0-based line number; callers add their own indexing offset
	Length int // byte length of the tokenized construct

	Name      string  // FIELD, NAME, FIELDSET_ENTRY, SECTION, BLOCK, BLOCK_TERMINATOR
	Value     *string // FIELD, LIST_ITEM, FIELDSET_ENTRY, CONTINUATION (never NAME -- that's what distinguishes NAME from FIELD)
	Comment   *string // COMMENT
	Separator string  // CONTINUATION: " " (line) or "\n" (newline)
	Depth     int     // SECTION: number of leading '#'; BLOCK/BLOCK_TERMINATOR: number of leading '-'
	Template  *string // SECTION, NAME (bare-name copy)
	DeepCopy  bool     // true for a "<<" copy; only meaningful when Template != nil

	Ranges Ranges
}

// End returns Index + Length, the absolute byte offset just past this
// instruction (before the skipped newline, if any).
func (in Instruction) End() int { return in.Index + in.Length }

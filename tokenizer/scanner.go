package tokenizer

import "strings"

// Options configures one Tokenize call.
type Options struct {
	// ZeroIndexed selects the offset Indexing returns for showing line
	// numbers: when false (the default), they are shown 1-based. Tokenize
	// itself always records 0-based lines. original_source/src/parser.rs
	// threads the same choice through as zero_indexing.
	ZeroIndexed bool
	// Locale names which catalog a caller should format this call's
	// Diagnostics with. Tokenize itself never formats a message -- see
	// Diagnostic.Format -- it only carries the chosen name alongside the
	// raw result for whoever does.
	Locale string
}

// Indexing returns the value a Diagnostic.Line should be offset by before
// being shown to a person: 0 if ZeroIndexed, 1 otherwise.
func (o Options) Indexing() int {
	if o.ZeroIndexed {
		return 0
	}
	return 1
}

// Result is everything one Tokenize call produces.
type Result struct {
	Instructions []Instruction
	Diagnostics  Diagnostics
}

// scanner holds the cursor state for one Tokenize call. It is re-created
// fresh per call; nothing about it is safe or meant to be reused or shared
// across goroutines.
type scanner struct {
	input string
	index int // absolute byte offset of the current line's first byte
	line  int // 0-based line number of the current line

	instructions []Instruction
	diagnostics  Diagnostics
}

// Tokenize scans input into an ordered Instruction stream plus any
// Diagnostics encountered along the way. It never returns a non-nil error
// for syntactic problems in input -- those are reported through
// Result.Diagnostics, never as a Go error. The error return is reserved for
// contract-level failures; the current implementation never produces one,
// but the signature stays stable for future wiring (e.g. a caller-supplied
// hook that can itself fail).
func Tokenize(input string, opts Options) (Result, error) {
	// Empty input has no lines at all, not even a trailing-newline sentinel.
	if input == "" {
		return Result{}, nil
	}

	s := &scanner{input: input}

	for s.index <= len(s.input) {
		rel := strings.IndexByte(s.input[s.index:], '\n')
		var line string
		var hasNewline bool
		if rel == -1 {
			line = s.input[s.index:]
			hasNewline = false
		} else {
			line = s.input[s.index : s.index+rel]
			hasNewline = true
		}

		lineStart := s.index

		instr, ok := matchLine(line)
		if !ok {
			key := InvalidLine
			if isUnterminatedEscapedName(line) {
				key = UnterminatedEscapedName
			}
			s.diagnostics = append(s.diagnostics, Diagnostic{Key: key, Line: s.line})
			s.advance(lineStart, len(line), hasNewline)
			if !hasNewline {
				break
			}
			continue
		}

		instr.Index = lineStart
		instr.Line = s.line
		instr.Length = len(line)
		s.instructions = append(s.instructions, instr)
		s.advance(lineStart, len(line), hasNewline)

		if instr.Kind == Block {
			if stop := s.scanBlock(instr.Depth, instr.Name); stop {
				break
			}
			continue
		}

		if !hasNewline {
			break
		}
	}

	return Result{Instructions: s.instructions, Diagnostics: s.diagnostics}, nil
}

// advance moves the cursor past one line of length lineLen starting at
// lineStart, plus its trailing newline byte if it has one.
func (s *scanner) advance(lineStart, lineLen int, hasNewline bool) {
	total := lineLen
	if hasNewline {
		total++
	}
	s.index = lineStart + total
	s.line++
}

// matchLine attempts to match one of the ten line shapes against line (the
// line's content, excluding its trailing newline). Every returned Range is
// relative to line itself; Tokenize's loop records line's absolute offset
// as Instruction.Index and leaves the Ranges line-local.
//
// The dispatch below is driven by the line's first non-whitespace byte,
// which is equivalent to (and simpler than, given Go's RE2 can't express
// one master alternation the way spec.md's grammar table does) the
// first-group-present dispatch order in spec.md section 4.1: each shape
// claims a disjoint leading character, so there is never a genuine
// ambiguity to resolve by trying shapes in priority order.
func matchLine(line string) (Instruction, bool) {
	trimStart, trimEnd := trimHorizontalRange(line)
	if trimStart >= trimEnd {
		return Instruction{Kind: EmptyLine}, true
	}
	pos := trimStart

	switch line[pos] {
	case '|':
		return matchContinuation(line, pos, "\n")
	case '\\':
		return matchContinuation(line, pos, " ")
	case '>':
		return matchComment(line, pos)
	case '-':
		if leadingDashRun(line[pos:]) == 1 {
			return matchListItem(line, pos)
		}
		return matchBlock(line, pos)
	case '#':
		return matchSection(line, pos)
	case '`':
		esc, ok := matchEscapedName(line[pos:])
		if !ok {
			return Instruction{}, false
		}
		name := line[pos:][esc.Content.Start:esc.Content.End]
		nameRange := offsetRange(esc.Content, pos)
		openRange := offsetRange(esc.OpenRun, pos)
		closeRange := offsetRange(esc.CloseRun, pos)
		afterName := line[pos:][esc.Total:]
		return dispatchLateDetermined(name, nameRange, &openRange, &closeRange, afterName, pos+esc.Total)
	default:
		rest := line[pos:]
		opRel := strings.IndexAny(rest, ":=<")
		if opRel == -1 {
			return Instruction{}, false
		}
		namePre := rest[:opRel]
		vs, ve := trimHorizontalRange(namePre)
		if vs >= ve {
			return Instruction{}, false
		}
		name := namePre[vs:ve]
		nameRange := Range{pos + vs, pos + ve}
		afterName := rest[opRel:]
		return dispatchLateDetermined(name, nameRange, nil, nil, afterName, pos+opRel)
	}
}

func offsetRange(r Range, base int) Range {
	return Range{base + r.Start, base + r.End}
}

func matchContinuation(line string, pos int, separator string) (Instruction, bool) {
	opRange := Range{pos, pos + 1}
	rest := line[pos+1:]
	vs, ve := trimHorizontalRange(rest)
	in := Instruction{
		Kind:      Continuation,
		Separator: separator,
		Ranges:    Ranges{ContinuationOperator: &opRange},
	}
	if vs < ve {
		v := rest[vs:ve]
		in.Value = &v
		r := Range{pos + 1 + vs, pos + 1 + ve}
		in.Ranges.Value = &r
	}
	return in, true
}

func matchComment(line string, pos int) (Instruction, bool) {
	opRange := Range{pos, pos + 1}
	rest := line[pos+1:]
	vs, ve := trimHorizontalRange(rest)
	in := Instruction{
		Kind:   Comment,
		Ranges: Ranges{CommentOperator: &opRange},
	}
	if vs < ve {
		c := rest[vs:ve]
		in.Comment = &c
		r := Range{pos + 1 + vs, pos + 1 + ve}
		in.Ranges.Comment = &r
	}
	return in, true
}

func matchListItem(line string, pos int) (Instruction, bool) {
	opRange := Range{pos, pos + 1}
	rest := line[pos+1:]
	vs, ve := trimHorizontalRange(rest)
	in := Instruction{
		Kind:   ListItem,
		Ranges: Ranges{ItemOperator: &opRange},
	}
	if vs < ve {
		v := rest[vs:ve]
		in.Value = &v
		r := Range{pos + 1 + vs, pos + 1 + ve}
		in.Ranges.Value = &r
	}
	return in, true
}

func matchBlock(line string, pos int) (Instruction, bool) {
	m, ok := parseBlockOpener(line, pos)
	if !ok {
		return Instruction{}, false
	}
	return Instruction{
		Kind:  Block,
		Name:  m.NameText,
		Depth: m.DashCount,
		Ranges: Ranges{
			BlockOperator: &m.Dashes,
			Name:          &m.Name,
		},
	}, true
}

func matchSection(line string, pos int) (Instruction, bool) {
	hashN := leadingHashRun(line[pos:])
	opRange := Range{pos, pos + hashN}
	rest := line[pos+hashN:]
	leadWs := leadingHSpaceLen(rest)
	body := rest[leadWs:]
	base := pos + hashN + leadWs

	if body == "" {
		return Instruction{}, false
	}

	in := Instruction{Kind: Section, Depth: hashN}
	in.Ranges.SectionOperator = &opRange

	var afterName string
	var afterNameBase int

	if body[0] == '`' {
		esc, ok := matchEscapedName(body)
		if !ok {
			return Instruction{}, false
		}
		name := body[esc.Content.Start:esc.Content.End]
		nameRange := offsetRange(esc.Content, base)
		openRange := offsetRange(esc.OpenRun, base)
		closeRange := offsetRange(esc.CloseRun, base)
		in.Name = name
		in.Ranges.Name = &nameRange
		in.Ranges.EscapeBeginOperator = &openRange
		in.Ranges.EscapeEndOperator = &closeRange
		afterName = body[esc.Total:]
		afterNameBase = base + esc.Total
		w := leadingHSpaceLen(afterName)
		afterName = afterName[w:]
		afterNameBase += w
	} else {
		ltRel := strings.IndexByte(body, '<')
		var namePre string
		if ltRel == -1 {
			namePre = body
			afterName = ""
			afterNameBase = base + len(body)
		} else {
			namePre = body[:ltRel]
			afterName = body[ltRel:]
			afterNameBase = base + ltRel
		}
		vs, ve := trimHorizontalRange(namePre)
		if vs >= ve {
			return Instruction{}, false
		}
		in.Name = namePre[vs:ve]
		nameRange := Range{base + vs, base + ve}
		in.Ranges.Name = &nameRange
	}

	template, deep, copyRange, templateRange, ok := parseTemplate(afterName, afterNameBase)
	if !ok {
		return Instruction{}, false
	}
	if template != nil {
		in.Template = template
		in.DeepCopy = deep
		in.Ranges.Template = templateRange
		if deep {
			in.Ranges.DeepCopyOperator = copyRange
		} else {
			in.Ranges.CopyOperator = copyRange
		}
	}
	return in, true
}

// parseTemplate parses an optional "< template" / "<< template" suffix. s is
// either empty (no template) or starts with '<'. baseOffset is s's absolute
// offset within the line being matched.
func parseTemplate(s string, baseOffset int) (template *string, deep bool, copyRange, templateRange *Range, ok bool) {
	if s == "" {
		return nil, false, nil, nil, true
	}
	width, deep, _ := copyOperator(s)
	rest := s[width:]
	vs, ve := trimHorizontalRange(rest)
	if vs >= ve {
		return nil, false, nil, nil, false
	}
	t := rest[vs:ve]
	cr := Range{baseOffset, baseOffset + width}
	tr := Range{baseOffset + width + vs, baseOffset + width + ve}
	return &t, deep, &cr, &tr, true
}

// dispatchLateDetermined parses whichever of FIELD_OR_NAME, FIELDSET_ENTRY or
// COPY follows a NAME (escaped or unescaped). afterOp is the line's
// remainder starting at or before the operator character -- the escaped-name
// path may still have separating horizontal whitespace attached, which this
// function skips before dispatching. baseOffset is afterOp's absolute offset
// within the line being matched.
func dispatchLateDetermined(name string, nameRange Range, escBegin, escEnd *Range, afterOp string, baseOffset int) (Instruction, bool) {
	// The escaped-name path (matchLine's '`' case) hands us afterOp with its
	// separating "\s*" still attached -- the unescaped path never has any
	// since its operator search lands directly on the operator byte. Skip it
	// uniformly so both paths dispatch on the same footing.
	w := leadingHSpaceLen(afterOp)
	afterOp = afterOp[w:]
	baseOffset += w

	if afterOp == "" {
		return Instruction{}, false
	}

	ranges := Ranges{Name: &nameRange, EscapeBeginOperator: escBegin, EscapeEndOperator: escEnd}

	switch afterOp[0] {
	case ':':
		opRange := Range{baseOffset, baseOffset + 1}
		ranges.NameOperator = &opRange
		rest := afterOp[1:]
		vs, ve := trimHorizontalRange(rest)
		if vs < ve {
			v := rest[vs:ve]
			r := Range{baseOffset + 1 + vs, baseOffset + 1 + ve}
			ranges.Value = &r
			return Instruction{Kind: Field, Name: name, Value: &v, Ranges: ranges}, true
		}
		return Instruction{Kind: Name, Name: name, Ranges: ranges}, true

	case '=':
		opRange := Range{baseOffset, baseOffset + 1}
		ranges.EntryOperator = &opRange
		rest := afterOp[1:]
		vs, ve := trimHorizontalRange(rest)
		in := Instruction{Kind: FieldsetEntry, Name: name, Ranges: ranges}
		if vs < ve {
			v := rest[vs:ve]
			in.Value = &v
			r := Range{baseOffset + 1 + vs, baseOffset + 1 + ve}
			in.Ranges.Value = &r
		}
		return in, true

	case '<':
		width, deep, _ := copyOperator(afterOp)
		opRange := Range{baseOffset, baseOffset + width}
		rest := afterOp[width:]
		vs, ve := trimHorizontalRange(rest)
		if vs >= ve {
			return Instruction{}, false
		}
		t := rest[vs:ve]
		tr := Range{baseOffset + width + vs, baseOffset + width + ve}
		ranges.Template = &tr
		if deep {
			ranges.DeepCopyOperator = &opRange
		} else {
			ranges.CopyOperator = &opRange
		}
		return Instruction{Kind: Name, Name: name, Template: &t, DeepCopy: deep, Ranges: ranges}, true

	default:
		return Instruction{}, false
	}
}

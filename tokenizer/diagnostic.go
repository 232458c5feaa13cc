package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eno-lang/enotok/locale"
)

// DiagnosticKey identifies one of the tokenizer's three error conditions.
// These are the only keys this package ever emits; every other key in the
// shared locale catalogs (duplicate-entry checks, hierarchy-skip checks,
// value-loader errors, ...) belongs to the downstream parser.
type DiagnosticKey string

const (
	InvalidLine             DiagnosticKey = "invalid_line"
	UnterminatedBlock       DiagnosticKey = "unterminated_block"
	UnterminatedEscapedName DiagnosticKey = "unterminated_escaped_name"
)

// Diagnostic is one syntactic finding, tied to the line it was found on.
// Name is only populated for UnterminatedBlock (the block's name).
type Diagnostic struct {
	Key  DiagnosticKey
	Line int
	Name string
}

// Format renders the diagnostic through a locale catalog, applying the
// Options.ZeroIndexed-aware line number the same way
// original_source/src/messages.rs's rt_format! calls add `context.Indexing`
// before substitution.
func (d Diagnostic) Format(cat *locale.Catalog, indexing int) string {
	reportedLine := d.Line + indexing
	switch d.Key {
	case UnterminatedBlock:
		return cat.Format("tokenization.unterminated_block", d.Name, reportedLine)
	default:
		return cat.Format("tokenization."+string(d.Key), reportedLine)
	}
}

// Diagnostics is the ordered list of findings from one Tokenize call. It
// implements error so a caller that wants "fail the build on any finding"
// can do `if err := result.Diagnostics.Err(); err != nil`, the same shape
// as the teacher's SQLCodeParseErrors wrapping []sqlparser.Error.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	var b strings.Builder
	b.WriteString("tokenizer found syntax errors:\n")
	for _, d := range ds {
		fmt.Fprintf(&b, "  line %d: %s\n", d.Line, d.Key)
	}
	return b.String()
}

// Err returns nil if there are no diagnostics, and ds otherwise.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// unterminatedEscapedNamePattern is the fallback pattern used to
// distinguish a plain invalid_line from a line that looks like it started
// an escaped name but never closed it. Ported verbatim (semantics, not
// syntax -- Go's RE2 has no backreferences) from
// original_source/src/messages.rs's UNTERMINATED_ESCAPED_NAME constant:
//
//	^\s*(`+)(?!`)((?:(?!\1).)+)$
//
// RE2 cannot express the backreference \1 (the remainder must not contain
// the opening run) or the adjacent negative lookahead, so both are checked
// by isUnterminatedEscapedName below instead of inside the pattern.
var unterminatedEscapedNameOpener = regexp.MustCompile("^\\s*(`+)(.*)$")

// isUnterminatedEscapedName reports whether line looks like it opened an
// escaped name (a run of backticks, then at least one more character) and
// the rest of the line never contains the opening run again. It is applied to
// exactly the offending line slice, per spec.md section 4.2.1 -- not to the
// remainder of the document.
func isUnterminatedEscapedName(line string) bool {
	m := unterminatedEscapedNameOpener.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	openRun, rest := m[1], m[2]
	if rest == "" {
		// "(?!`)" in the original: the character right after the opening run
		// must not itself be a backtick (that would just extend the run).
		return false
	}
	if rest[0] == '`' {
		return false
	}
	// If the opening run occurs again anywhere in the rest of the line (even
	// inside a longer backtick run), this is NOT an unterminated escaped
	// name -- it's some other kind of invalid line.
	return !strings.Contains(rest, openRun)
}

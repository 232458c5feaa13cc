// Package example is a runnable, documentation-by-example package: it
// tokenizes an embedded sample document and exposes the result, the way the
// teacher's example/basic/example.go embeds and exposes a ready-to-use SQL
// bundle.
package example

import (
	"embed"

	"github.com/eno-lang/enotok/tokenizer"
)

//go:embed sample.eno
var sampleFS embed.FS

// Sample is the embedded document's raw contents.
var Sample = mustReadSample()

func mustReadSample() string {
	data, err := sampleFS.ReadFile("sample.eno")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Tokenize runs the tokenizer over Sample with the library's defaults
// (1-based line numbers, "en" locale for anyone formatting its diagnostics).
func Tokenize() (tokenizer.Result, error) {
	return tokenizer.Tokenize(Sample, tokenizer.Options{})
}

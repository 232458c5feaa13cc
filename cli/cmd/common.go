package cmd

import (
	"fmt"
	"os"

	"github.com/eno-lang/enotok/locale"
	"github.com/eno-lang/enotok/tokenizer"
)

// resolveLocale picks the effective locale name: the --locale flag wins
// over enotok.yaml's locale key, which wins over "en".
func resolveLocale(cfg Config) string {
	if locale != "" {
		return locale
	}
	if cfg.Locale != "" {
		return cfg.Locale
	}
	return "en"
}

// tokenizeFile reads path, loads enotok.yaml from directory, and tokenizes
// the file's contents, returning everything a subcommand needs to report
// results: the result itself, the resolved Options and the loaded catalog.
func tokenizeFile(path string) (tokenizer.Result, tokenizer.Options, *locale.Catalog, error) {
	cfg, err := LoadConfig(directory)
	if err != nil {
		return tokenizer.Result{}, tokenizer.Options{}, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tokenizer.Result{}, tokenizer.Options{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	opts := tokenizer.Options{ZeroIndexed: cfg.ZeroIndexed, Locale: resolveLocale(cfg)}

	catalogs, err := locale.Load()
	if err != nil {
		return tokenizer.Result{}, tokenizer.Options{}, nil, err
	}
	cat := catalogs.Get(opts.Locale)

	result, err := tokenizer.Tokenize(string(data), opts)
	if err != nil {
		return tokenizer.Result{}, opts, cat, err
	}

	logger().WithFields(map[string]interface{}{
		"file":        path,
		"instruction": len(result.Instructions),
		"diagnostic":  len(result.Diagnostics),
	}).Debug("tokenized file")

	return result, opts, cat, nil
}

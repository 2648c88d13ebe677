// Package langdetect guesses the language of a code snippet so fenced
// blocks without an info string can be tagged. Detection uses go-enry
// with a few fast structural checks in front of the classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned when no language can be determined with
// reasonable confidence.
const Fallback = "text"

// classifierCandidates bounds the enry classifier to languages that
// commonly appear in documentation snippets.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "TOML", "HTML", "CSS", "Dockerfile",
}

// structural pairs a cheap predicate with the info-string identifier it
// implies. Checked in order, most specific first.
var structural = []struct {
	lang  string
	match func(trimmed []byte, lower string) bool
}{
	{"go", func(t []byte, _ string) bool {
		return bytes.HasPrefix(t, []byte("package ")) || bytes.Contains(t, []byte("func main()"))
	}},
	{"rust", func(_ []byte, l string) bool {
		return strings.Contains(l, "fn main()") || strings.Contains(l, "println!") ||
			strings.Contains(l, "let mut ")
	}},
	{"python", func(_ []byte, l string) bool {
		return (strings.Contains(l, "def ") && strings.Contains(l, "):")) ||
			strings.Contains(l, "__main__")
	}},
	{"html", func(_ []byte, l string) bool {
		return strings.Contains(l, "<!doctype html") || strings.Contains(l, "<html") ||
			strings.Contains(l, "<body>")
	}},
	{"json", func(t []byte, _ string) bool {
		if len(t) == 0 || (t[0] != '{' && t[0] != '[') {
			return false
		}
		return bytes.Contains(t, []byte(`":`)) || bytes.Contains(t, []byte(`",`))
	}},
	{"dockerfile", func(t []byte, _ string) bool {
		return bytes.HasPrefix(t, []byte("FROM ")) &&
			(bytes.Contains(t, []byte("\nRUN ")) || bytes.Contains(t, []byte("\nCOPY ")))
	}},
	{"sql", func(_ []byte, l string) bool {
		for _, kw := range []string{"select ", "insert into ", "create table ", "update "} {
			if strings.HasPrefix(l, kw) {
				return true
			}
		}
		return false
	}},
	{"bash", func(t []byte, _ string) bool {
		return bytes.HasPrefix(t, []byte("$ ")) || bytes.HasPrefix(t, []byte("#!/bin/sh")) ||
			bytes.HasPrefix(t, []byte("#!/bin/bash"))
	}},
}

// Detect returns a lowercase info-string identifier for the snippet, or
// Fallback when nothing matches confidently.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Fallback
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	lower := strings.ToLower(string(trimmed))
	for _, s := range structural {
		if s.match(trimmed, lower) {
			return s.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Fallback
}

// normalize maps enry display names onto the identifiers fence info
// strings conventionally use.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "":
		return Fallback
	}
	return strings.ToLower(lang)
}

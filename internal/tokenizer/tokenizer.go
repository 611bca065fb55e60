// Package tokenizer splits a shell command line into the words the matcher walks.
package tokenizer

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
)

// Split tokenizes line up to the cursor position point (a character offset).
// The program name is dropped. When the text before the cursor ends in
// unescaped whitespace, an empty word is appended: the user is starting a new
// word rather than narrowing the last one.
func Split(line string, point int) ([]string, error) {
	line = Truncate(line, point)

	if danglingEscape(line) {
		return nil, derrors.NewTokenizeError(line, "failed to split command line", errNoEscapedChar)
	}

	words := []string{}
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	err := parser.Words(strings.NewReader(line), func(w *syntax.Word) bool {
		words = append(words, wordToString(line, w))
		return true
	})
	if err != nil {
		return nil, derrors.NewTokenizeError(line, "failed to split command line", err)
	}

	if len(words) > 0 {
		words = words[1:]
	}

	if endsInSpace(line) {
		words = append(words, "")
	}

	return words, nil
}

// Truncate returns the part of line before the cursor. point counts characters,
// not bytes; out-of-range values select the whole line.
func Truncate(line string, point int) string {
	if point < 0 {
		return line
	}
	runes := []rune(line)
	if point >= len(runes) {
		return line
	}
	return string(runes[:point])
}

type tokenizeError string

func (e tokenizeError) Error() string { return string(e) }

const errNoEscapedChar = tokenizeError("no escaped character")

// trailingBackslashes counts the backslashes at the end of s
func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func danglingEscape(line string) bool {
	return trailingBackslashes(line)%2 == 1
}

// endsInSpace reports whether line ends with whitespace that is not escaped
func endsInSpace(line string) bool {
	if line == "" {
		return false
	}
	last := line[len(line)-1]
	if last != ' ' && last != '\t' && last != '\n' {
		return false
	}
	return trailingBackslashes(line[:len(line)-1])%2 == 0
}

// wordToString performs quote removal on a parsed word. Expansions are never
// evaluated at completion time, so they are kept as written in the source.
func wordToString(src string, w *syntax.Word) string {
	var sb strings.Builder
	for _, part := range w.Parts {
		writePart(&sb, src, part, false)
	}
	return sb.String()
}

func writePart(sb *strings.Builder, src string, part syntax.WordPart, inDouble bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		sb.WriteString(unescape(p.Value, inDouble))
	case *syntax.SglQuoted:
		sb.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			writePart(sb, src, inner, true)
		}
	default:
		sb.WriteString(source(src, part))
	}
}

// source returns the original text of a node
func source(src string, node syntax.Node) string {
	start, end := int(node.Pos().Offset()), int(node.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// unescape removes backslash escapes. Inside double quotes only $, `, ", \ and
// newline are escapable, as in POSIX shells.
func unescape(s string, inDouble bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			switch {
			case next == '\n':
				i++
				continue
			case !inDouble || strings.IndexByte("$`\"\\", next) >= 0:
				sb.WriteByte(next)
				i++
				continue
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

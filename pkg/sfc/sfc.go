// Package sfc splits Vue single-file components into their top-level blocks.
//
// Only the top level of the document is interpreted: the inner content of
// each block is returned verbatim (byte offsets into the original source),
// so template markup and script text are never normalized by an HTML tree
// builder.
package sfc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Block kinds recognized at the top level of a component file.
const (
	BlockTemplate = "template"
	BlockScript   = "script"
	BlockStyle    = "style"
)

// Block is one top-level element of a component file.
type Block struct {
	// Tag is the lower-cased element name ("template", "script", "style", or a custom block name).
	Tag string

	// Attrs holds the element attributes. Boolean attributes map to "".
	Attrs map[string]string

	// Content is the raw inner text between the opening and closing tags.
	Content string

	// Start and End are 0-based byte offsets of Content within the file.
	Start int
	End   int

	// Line is the 1-based line of the first byte of Content.
	Line int
}

// Lang returns the value of the lang attribute, or "" when absent.
func (b *Block) Lang() string {
	return b.Attrs["lang"]
}

// HasAttr reports whether the attribute is present (with or without a value).
func (b *Block) HasAttr(name string) bool {
	_, ok := b.Attrs[name]
	return ok
}

// File is a component file split into blocks.
type File struct {
	// Template is the first top-level <template> block, nil if absent.
	Template *Block

	// Script is the first top-level <script> block without the setup attribute.
	Script *Block

	// ScriptSetup is the first top-level <script setup> block.
	ScriptSetup *Block

	Styles []*Block

	// Custom holds any other top-level blocks (i18n, docs, ...).
	Custom []*Block
}

// TemplateMarkup returns the template content with surrounding whitespace trimmed.
func (f *File) TemplateMarkup() string {
	if f.Template == nil {
		return ""
	}
	return strings.TrimSpace(f.Template.Content)
}

// Parse splits source into top-level blocks.
//
// Unterminated blocks are an error. Text and comments between blocks are
// ignored.
func Parse(source []byte) (*File, error) {
	z := html.NewTokenizer(bytes.NewReader(source))

	file := &File{}
	offset := 0

	var open *Block
	nesting := 0 // same-name nesting depth inside open

	for {
		tt := z.Next()
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if open != nil {
					return nil, fmt.Errorf("unterminated <%s> block at line %d", open.Tag, open.Line)
				}
				return file, nil
			}
			return nil, fmt.Errorf("tokenize component: %w", z.Err())

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if open == nil {
				open = &Block{
					Tag:   tag,
					Attrs: readAttrs(z, hasAttr),
					Start: offset,
					Line:  lineAt(source, offset),
				}
				nesting = 1
				continue
			}
			if tag == open.Tag {
				nesting++
			}

		case html.EndTagToken:
			if open == nil {
				continue
			}
			name, _ := z.TagName()
			if string(name) != open.Tag {
				continue
			}
			nesting--
			if nesting > 0 {
				continue
			}
			open.End = tokenStart
			open.Content = string(source[open.Start:open.End])
			file.add(open)
			open = nil

		case html.SelfClosingTagToken:
			if open != nil {
				continue
			}
			name, hasAttr := z.TagName()
			file.add(&Block{
				Tag:   string(name),
				Attrs: readAttrs(z, hasAttr),
				Start: offset,
				End:   offset,
				Line:  lineAt(source, offset),
			})
		}
	}
}

// add files a completed block under its kind. Only the first template and
// the first script of each flavour are kept; later duplicates are dropped.
func (f *File) add(b *Block) {
	switch b.Tag {
	case BlockTemplate:
		if f.Template == nil {
			f.Template = b
		}
	case BlockScript:
		if b.HasAttr("setup") {
			if f.ScriptSetup == nil {
				f.ScriptSetup = b
			}
			return
		}
		if f.Script == nil {
			f.Script = b
		}
	case BlockStyle:
		f.Styles = append(f.Styles, b)
	default:
		f.Custom = append(f.Custom, b)
	}
}

func readAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

// lineAt returns the 1-based line number of byte offset off.
func lineAt(source []byte, off int) int {
	if off > len(source) {
		off = len(source)
	}
	return bytes.Count(source[:off], []byte("\n")) + 1
}

package extractor

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/mx-llm/vuechunk/pkg/parser"
	"github.com/mx-llm/vuechunk/pkg/parser/queries"
	"github.com/mx-llm/vuechunk/pkg/sfc"
	"github.com/mx-llm/vuechunk/pkg/util"
)

// Extractor turns component files into descriptors.
//
// The script block of each file is parsed ONCE; the class query and the
// member fold run on the same tree, which is closed before returning.
//
// Usage:
//
//	ext := NewExtractor(parserManager, queryManager, reader, DefaultMarkers(), logger)
//	outcome := ext.ExtractFile("/abs/src/Hello.vue", "src/Hello.vue")
//	if outcome.Status == StatusExtracted {
//	    // use outcome.Descriptor
//	}
type Extractor struct {
	parserManager *parser.ParserManager
	queryManager  *queries.QueryManager
	reader        *util.SourceReader
	markers       MarkerSet
	cache         Cache
	logger        *slog.Logger
}

// NewExtractor creates an extractor. A nil reader or logger gets a default,
// an empty marker set gets DefaultMarkers().
func NewExtractor(pm *parser.ParserManager, qm *queries.QueryManager, reader *util.SourceReader, markers MarkerSet, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if reader == nil {
		reader = util.NewSourceReader(logger)
	}
	if len(markers) == 0 {
		markers = DefaultMarkers()
	}

	return &Extractor{
		parserManager: pm,
		queryManager:  qm,
		reader:        reader,
		markers:       markers,
		logger:        logger,
	}
}

// ExtractFile reads the file at path and extracts it. relPath is the
// identity recorded in the descriptor.
func (e *Extractor) ExtractFile(path, relPath string) Outcome {
	source, err := e.reader.Read(path)
	if err != nil {
		return failed(relPath, ErrFileRead, err)
	}

	if e.cache == nil {
		return e.ExtractSource(relPath, source)
	}
	if outcome, ok := e.cache.Get(relPath, source); ok {
		return outcome
	}
	outcome := e.ExtractSource(relPath, source)
	e.cache.Add(relPath, source, outcome)
	return outcome
}

// ExtractSource extracts a component from its source bytes.
func (e *Extractor) ExtractSource(relPath string, source []byte) Outcome {
	file, err := sfc.Parse(source)
	if err != nil {
		return failed(relPath, ErrSyntaxParse, err)
	}

	script := file.Script
	if script == nil {
		return skipped(relPath, SkipNoScript)
	}

	lang, isTSX := parser.FromScriptLang(script.Lang())
	if !lang.IsStaticallyTyped() {
		return skipped(relPath, SkipNotTyped)
	}

	descriptor := newDescriptor(relPath, file.TemplateMarkup(), script.Content)

	code := []byte(script.Content)
	tree, err := e.parserManager.Parse(code, lang, isTSX)
	if err != nil {
		return failed(relPath, ErrSyntaxParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return failed(relPath, ErrSyntaxParse, locateSyntaxError(root, code, source, script))
	}

	class, err := e.componentClass(tree, code, lang, isTSX, relPath)
	if err != nil {
		return failed(relPath, ErrSyntaxParse, err)
	}
	if class == nil {
		e.logger.Debug("no component class", "file", relPath)
		return extracted(descriptor)
	}

	descriptor.ClassName = class.name
	if body := class.node.ChildByFieldName("body"); body != nil {
		shape := foldMembers(collectMembers(body, code), e.markers)
		descriptor.Methods = nonNil(shape.methods)
		descriptor.Properties = nonNil(shape.properties)
		descriptor.Emits = nonNil(shape.emits)
	}

	e.logger.Debug("extracted component",
		"file", relPath,
		"class", descriptor.ClassName,
		"methods", len(descriptor.Methods),
		"properties", len(descriptor.Properties),
		"emits", len(descriptor.Emits))

	return extracted(descriptor)
}

type componentClass struct {
	name string
	node *ts.Node
}

// componentClass returns the first top-level class, in source order, that
// carries a component marker on itself or on its export statement.
func (e *Extractor) componentClass(tree *ts.Tree, code []byte, lang parser.Language, isTSX bool, relPath string) (*componentClass, error) {
	query, err := e.queryManager.GetQuery(lang, isTSX, queries.QueryTypeClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes query: %w", err)
	}

	matches, err := e.queryManager.ExecuteQuery(tree, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to execute classes query: %w", err)
	}

	var candidates []componentClass
	for _, m := range matches {
		def := m.Capture("class.definition")
		name := m.Capture("class.name")
		if def == nil || name == nil {
			continue
		}

		decorators := childDecorators(def.Node, code)
		if export := m.Capture("class.export"); export != nil {
			decorators = append(decorators, childDecorators(export.Node, code)...)
		}
		if !e.markers.Any(decorators, MarkerComponent) {
			continue
		}
		candidates = append(candidates, componentClass{name: name.Text, node: def.Node})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].node.StartByte() < candidates[j].node.StartByte()
	})

	if len(candidates) > 1 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.name
		}
		e.logger.Debug("several component classes, using the first",
			"file", relPath,
			"classes", strings.Join(names, ","))
	}

	return &candidates[0], nil
}

// locateSyntaxError finds the first ERROR or MISSING node in document
// order and reports it in component-file coordinates.
func locateSyntaxError(root *ts.Node, code, source []byte, script *sfc.Block) *SyntaxError {
	node := firstErrorNode(root)
	if node == nil {
		node = root
	}

	pos := node.StartPosition()
	line := script.Line + int(pos.Row)
	column := int(pos.Column) + 1
	if pos.Row == 0 {
		column += script.Start - (bytes.LastIndexByte(source[:script.Start], '\n') + 1)
	}

	if node.IsMissing() {
		return &SyntaxError{Line: line, Column: column, Missing: true, Token: node.Kind()}
	}
	return &SyntaxError{Line: line, Column: column, Token: snippet(node.Utf8Text(code))}
}

func firstErrorNode(node *ts.Node) *ts.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

// snippet shortens error text to its first line, at most 20 runes.
func snippet(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if utf8.RuneCountInString(text) > 20 {
		text = string([]rune(text)[:20])
	}
	return text
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

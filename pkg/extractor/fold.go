package extractor

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// memberKind is the category of a class member relevant to extraction.
type memberKind int

const (
	memberMethod memberKind = iota
	memberProperty
)

// classMember is one named member of a class body with the decorator
// identifiers attached to it.
type classMember struct {
	kind       memberKind
	name       string
	decorators []string
}

// classShape accumulates the lists of a component descriptor. Values are
// never mutated in place: each with* method returns a new shape.
type classShape struct {
	methods    []string
	properties []string
	emits      []string
}

func (s classShape) withMethod(name string) classShape {
	s.methods = appendCopy(s.methods, name)
	return s
}

func (s classShape) withProperty(name string) classShape {
	s.properties = appendCopy(s.properties, name)
	return s
}

func (s classShape) withEmit(name string) classShape {
	s.emits = appendCopy(s.emits, name)
	return s
}

// appendCopy appends without writing into a backing array another shape
// may share.
func appendCopy(list []string, v string) []string {
	return append(list[:len(list):len(list)], v)
}

// step folds one member into the shape.
func step(markers MarkerSet) func(classShape, classMember) classShape {
	return func(s classShape, m classMember) classShape {
		switch m.kind {
		case memberMethod:
			return s.withMethod(m.name)
		case memberProperty:
			s = s.withProperty(m.name)
			if markers.Any(m.decorators, MarkerEmitsEvent) {
				s = s.withEmit(m.name)
			}
			return s
		default:
			return s
		}
	}
}

// foldMembers reduces members, in order, into a classShape.
func foldMembers(members []classMember, markers MarkerSet) classShape {
	f := step(markers)
	shape := classShape{}
	for _, m := range members {
		shape = f(shape, m)
	}
	return shape
}

// collectMembers lists the direct methods and fields of a class body in
// source order. Members of nested classes are not visited.
//
// Decorators on methods appear as siblings before the method_definition;
// decorators on fields are children of public_field_definition. Both end
// up on the member they precede.
func collectMembers(body *ts.Node, source []byte) []classMember {
	var members []classMember
	var pending []string

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}

		switch child.Kind() {
		case "comment":
			continue

		case "decorator":
			if name := decoratorName(child, source); name != "" {
				pending = append(pending, name)
			}
			continue

		case "method_definition":
			decorators := append(pending, childDecorators(child, source)...)
			name, ok := memberName(child, source)
			if ok && isPlainMethod(child, name) {
				members = append(members, classMember{kind: memberMethod, name: name, decorators: decorators})
			}

		case "public_field_definition":
			decorators := append(pending, childDecorators(child, source)...)
			if name, ok := memberName(child, source); ok {
				members = append(members, classMember{kind: memberProperty, name: name, decorators: decorators})
			}
		}

		// Any other member (signatures, index signatures, static blocks)
		// consumes the pending decorators too.
		pending = nil
	}

	return members
}

// memberName returns the declared name of a method or field. Computed,
// private (#name) and numeric names are not reported; string names are
// unquoted.
func memberName(member *ts.Node, source []byte) (string, bool) {
	nameNode := member.ChildByFieldName("name")
	if nameNode == nil {
		return "", false
	}

	switch nameNode.Kind() {
	case "property_identifier":
		return nameNode.Utf8Text(source), true
	case "string":
		text := nameNode.Utf8Text(source)
		if len(text) < 2 {
			return "", false
		}
		return text[1 : len(text)-1], true
	default:
		return "", false
	}
}

// isPlainMethod reports whether a method_definition is an ordinary method:
// not the constructor and not a get/set accessor.
func isPlainMethod(method *ts.Node, name string) bool {
	if name == "constructor" {
		return false
	}

	nameNode := method.ChildByFieldName("name")
	for i := uint(0); i < method.ChildCount(); i++ {
		child := method.Child(i)
		if child == nil || child.StartByte() >= nameNode.StartByte() {
			break
		}
		if !child.IsNamed() && (child.Kind() == "get" || child.Kind() == "set") {
			return false
		}
	}
	return true
}

// childDecorators returns the identifiers of decorator children of node.
func childDecorators(node *ts.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "decorator" {
			continue
		}
		if name := decoratorName(child, source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// decoratorName returns the identifier a decorator refers to: X for @X and
// for @X(...). Member expressions (@ns.X) and other forms yield "".
func decoratorName(decorator *ts.Node, source []byte) string {
	for i := uint(0); i < decorator.NamedChildCount(); i++ {
		expr := decorator.NamedChild(i)
		if expr == nil {
			continue
		}
		switch expr.Kind() {
		case "identifier":
			return expr.Utf8Text(source)
		case "call_expression":
			callee := expr.ChildByFieldName("function")
			if callee != nil && callee.Kind() == "identifier" {
				return callee.Utf8Text(source)
			}
			return ""
		case "comment":
			continue
		default:
			return ""
		}
	}
	return ""
}

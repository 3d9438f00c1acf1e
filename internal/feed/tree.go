package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// textKey holds the character data of an element that also has attributes
// or child elements.
const textKey = "#text"

// Node is an element of the generic feed tree. Keys are element and
// attribute names with their namespace prefix kept ("yt:videoId",
// "media:group"). Values are string, Node or []any; an element that occurs
// more than once under the same parent becomes a []any.
type Node map[string]any

// ParseTree decodes an XML document into a Node keyed by the root element name.
func ParseTree(data []byte) (Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	type frame struct {
		name string
		node Node
		text strings.Builder
	}

	root := Node{}
	var stack []*frame

	for {
		// RawToken keeps the literal prefix in Name.Space instead of resolving it
		// to the namespace URL.
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: qualifiedName(t.Name), node: Node{}}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
					continue
				}
				f.node[qualifiedName(attr.Name)] = attr.Value
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected closing tag %s", qualifiedName(t.Name))
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if name := qualifiedName(t.Name); name != f.name {
				return nil, fmt.Errorf("closing tag %s does not match %s", name, f.name)
			}

			var value any = f.node
			text := strings.TrimSpace(f.text.String())
			if len(f.node) == 0 {
				value = text
			} else if text != "" {
				f.node[textKey] = text
			}

			if len(stack) == 0 {
				appendChild(root, f.name, value)
			} else {
				appendChild(stack[len(stack)-1].node, f.name, value)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element %s", stack[len(stack)-1].name)
	}
	if len(root) == 0 {
		return nil, errors.New("document has no root element")
	}

	return root, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func appendChild(parent Node, name string, value any) {
	existing, ok := parent[name]
	if !ok {
		parent[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		parent[name] = append(list, value)
		return
	}
	parent[name] = []any{existing, value}
}

// AsList coerces a tree value to a sequence: nil becomes empty, a single
// value becomes a one-element list, and a list is returned as is.
func AsList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// AsNode returns v as a Node, or nil when it is text or absent.
func AsNode(v any) Node {
	n, _ := v.(Node)
	return n
}

// Text returns the character data of a tree value. Elements that carry
// attributes store their text under "#text".
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Node:
		s, _ := t[textKey].(string)
		return s
	case []any:
		if len(t) > 0 {
			return Text(t[0])
		}
	}
	return ""
}

// Path walks nested child elements, taking the first element whenever a
// step yields a sequence.
func (n Node) Path(names ...string) any {
	var cur any = n
	for _, name := range names {
		list := AsList(cur)
		if len(list) == 0 {
			return nil
		}
		node := AsNode(list[0])
		if node == nil {
			return nil
		}
		cur = node[name]
	}
	return cur
}

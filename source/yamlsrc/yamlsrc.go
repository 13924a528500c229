// Package yamlsrc adapts gopkg.in/yaml.v3 document trees to the engine token
// model, so YAML input flows through the same duplicate-key and depth
// enforcement as JSON.
package yamlsrc

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/goshape/internal/engine"
)

type source struct {
	tokens []eng.Token
	pos    int
}

// NewBytes parses the YAML document and yields its token stream.
// A parse failure is delivered by the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return &errSource{err: err}
	}
	s := &source{}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if err := s.emit(node); err != nil {
		return &errSource{err: err}
	}
	return s
}

func (s *source) emit(n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		s.tokens = append(s.tokens, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yamlsrc: non-scalar mapping key at line %d", k.Line)
			}
			s.tokens = append(s.tokens, eng.Token{Kind: eng.KindKey, String: k.Value, Offset: -1})
			if err := s.emit(n.Content[i+1]); err != nil {
				return err
			}
		}
		s.tokens = append(s.tokens, eng.Token{Kind: eng.KindEndObject, Offset: -1})
	case yaml.SequenceNode:
		s.tokens = append(s.tokens, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, c := range n.Content {
			if err := s.emit(c); err != nil {
				return err
			}
		}
		s.tokens = append(s.tokens, eng.Token{Kind: eng.KindEndArray, Offset: -1})
	case yaml.ScalarNode:
		s.tokens = append(s.tokens, scalarToken(n))
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("yamlsrc: unresolved alias at line %d", n.Line)
		}
		return s.emit(n.Alias)
	default:
		return fmt.Errorf("yamlsrc: unsupported node kind %d", n.Kind)
	}
	return nil
}

func scalarToken(n *yaml.Node) eng.Token {
	switch n.Tag {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: -1}
	case "!!bool":
		b, _ := strconv.ParseBool(n.Value)
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1}
	case "!!int", "!!float":
		return eng.Token{Kind: eng.KindNumber, Number: n.Value, Offset: -1}
	default:
		return eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1}
	}
}

func (s *source) NextToken() (eng.Token, error) {
	if s.pos >= len(s.tokens) {
		return eng.Token{}, io.EOF
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

type errSource struct{ err error }

func (e *errSource) NextToken() (eng.Token, error) { return eng.Token{}, e.err }
func (e *errSource) Location() int64               { return -1 }

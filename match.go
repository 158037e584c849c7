package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmespath/go-jmespath"
)

// A matcher evaluates a JMESPath expression against mapped GELF messages.
// A record passes when the result is neither nil, false, an empty string,
// nor an empty collection.
type matcher struct {
	expr *jmespath.JMESPath
}

// newMatcher compiles the expression. An empty expression yields a nil
// matcher, which passes everything.
func newMatcher(expr string) (*matcher, error) {
	if expr == "" {
		return nil, nil
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid match expression: %v", err)
	}
	return &matcher{expr: compiled}, nil
}

func (m *matcher) matches(msg map[string]any) bool {
	// JMESPath compares numbers as float64; normalize through JSON the
	// same way the message is later serialized.
	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WARN: match: marshal failed, keeping record: %v", err)
		return true
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		log.Printf("WARN: match: unmarshal failed, keeping record: %v", err)
		return true
	}
	res, err := m.expr.Search(doc)
	if err != nil {
		log.Printf("WARN: match: evaluation failed, keeping record: %v", err)
		return true
	}
	return !isEmptyResult(res)
}

func isEmptyResult(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

package main

import (
	"strings"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

// decodeCodepoints reverses the journal export convention of representing
// strings with unprintable or non-UTF8 bytes as arrays of integer
// character codes. Codes outside the valid rune range, and surrogates,
// decode to U+FFFD.
func decodeCodepoints(codes []int) string {
	var b strings.Builder
	b.Grow(len(codes))
	for _, c := range codes {
		r := rune(c)
		if c < 0 || c > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
	}
	return b.String()
}

// intSequence reports whether v is an array consisting solely of integers
// and returns the elements if so.
func intSequence(v *fastjson.Value) ([]int, bool) {
	if v.Type() != fastjson.TypeArray {
		return nil, false
	}
	arr, _ := v.Array()
	codes := make([]int, 0, len(arr))
	for _, el := range arr {
		n, err := el.Int()
		if err != nil {
			return nil, false
		}
		codes = append(codes, n)
	}
	return codes, true
}

// goValue converts a parsed JSON value into its Go representation.
// Integer arrays are decoded back into text; every other type passes
// through unchanged.
func goValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n
		}
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeArray:
		if codes, ok := intSequence(v); ok {
			return decodeCodepoints(codes)
		}
		arr, _ := v.Array()
		out := make([]any, 0, len(arr))
		for _, el := range arr {
			out = append(out, goValue(el))
		}
		return out
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any)
		obj.Visit(func(key []byte, el *fastjson.Value) {
			out[string(key)] = goValue(el)
		})
		return out
	}
	return nil
}

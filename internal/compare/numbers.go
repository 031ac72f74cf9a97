package compare

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxExactInt is the largest integer a float64 holds without rounding.
const maxExactInt = 1 << 53

// NormalizeNumbers rewrites the json.Number values of a tree decoded with
// UseNumber into one canonical form, so equal numbers compare equal:
// integer literals stay json.Number and keep every digit, integral
// decimals such as 2.0 become the json.Number "2", and any other decimal
// becomes a float64.
func NormalizeNumbers(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, el := range v {
			v[k] = NormalizeNumbers(el)
		}
		return v
	case []any:
		for i, el := range v {
			v[i] = NormalizeNumbers(el)
		}
		return v
	case json.Number:
		return normalizeNumber(v)
	}
	return node
}

func normalizeNumber(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return json.Number("0")
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return n
	}
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return f
}

// Package template provides the variable substitution used when a fixture
// renders its response. It supports {{name}} references resolved from the
// fixture's template variables plus a small set of dynamic builtins. Full
// response-body generation lives outside this module; this engine only
// substitutes.
package template

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine processes templates with variable substitution.
// An Engine is stateless and safe for concurrent use.
type Engine struct{}

// New creates a new template engine.
func New() *Engine {
	return &Engine{}
}

// templateRegex matches {{expression}} patterns with optional whitespace.
var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// randomIntPattern matches random.int or random.int(min, max).
var randomIntPattern = regexp.MustCompile(`^random\.int(?:\((\d+),\s*(\d+)\))?$`)

// Process evaluates a template string. Every {{expression}} is replaced by
// its value: first from vars, then from the builtins. Unknown expressions
// are left intact so a literal {{...}} in a response body survives.
func (e *Engine) Process(template string, vars map[string]string) string {
	return templateRegex.ReplaceAllStringFunc(template, func(match string) string {
		inner := templateRegex.FindStringSubmatch(match)
		if len(inner) < 2 {
			return match
		}
		expr := strings.TrimSpace(inner[1])

		if vars != nil {
			if v, ok := vars[expr]; ok {
				return v
			}
		}
		if v, ok := e.builtin(expr); ok {
			return v
		}
		return match
	})
}

// ProcessMap substitutes into every value of a string map, returning a new
// map. A nil input yields nil.
func (e *Engine) ProcessMap(in, vars map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = e.Process(v, vars)
	}
	return out
}

// builtin evaluates the dynamic builtin expressions.
func (e *Engine) builtin(expr string) (string, bool) {
	switch expr {
	case "uuid":
		return uuid.New().String(), true
	case "now":
		return time.Now().Format(time.RFC3339), true
	case "timestamp":
		return strconv.FormatInt(time.Now().Unix(), 10), true
	case "timestamp.unix_ms":
		return strconv.FormatInt(time.Now().UnixMilli(), 10), true
	}

	if m := randomIntPattern.FindStringSubmatch(expr); m != nil {
		lo, hi := 0, 100
		if m[1] != "" && m[2] != "" {
			lo, _ = strconv.Atoi(m[1])
			hi, _ = strconv.Atoi(m[2])
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		return strconv.Itoa(lo + rand.Intn(hi-lo+1)), true
	}

	return "", false
}

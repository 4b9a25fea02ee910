package matching

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ConditionEvaluator evaluates custom match expressions against a request
// environment using expr-lang, with a compile cache keyed by expression.
// It is safe for concurrent use.
type ConditionEvaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewConditionEvaluator creates an evaluator with an empty compile cache.
func NewConditionEvaluator() *ConditionEvaluator {
	return &ConditionEvaluator{
		programs: make(map[string]*vm.Program),
	}
}

// Eval evaluates a boolean expression against the environment.
// Non-boolean results are an error, as are compile and runtime failures.
func (e *ConditionEvaluator) Eval(expression string, env map[string]interface{}) (bool, error) {
	program, err := e.compile(expression)
	if err != nil {
		return false, fmt.Errorf("compile %q: %w", expression, err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", expression, err)
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expected bool result, got %T", expression, result)
	}
	return b, nil
}

// Validate checks that an expression compiles.
func (e *ConditionEvaluator) Validate(expression string) error {
	_, err := e.compile(expression)
	return err
}

func (e *ConditionEvaluator) compile(expression string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[expression]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	// Compiled without a typed env: fixture conditions reference request
	// fields that vary per protocol, so the env stays a plain map.
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	// Double-check in case another goroutine compiled the same expression.
	if existing, ok := e.programs[expression]; ok {
		e.mu.Unlock()
		return existing, nil
	}
	e.programs[expression] = program
	e.mu.Unlock()

	return program, nil
}

// RequestEnv builds the expression environment for a request. The body is
// exposed both as a raw string and, when it parses as JSON, as a structured
// value under "json".
func RequestEnv(operation, path, topic, routingKey string, partition *int32, qos *byte, metadata map[string]string, body []byte) map[string]interface{} {
	env := map[string]interface{}{
		"operation":  operation,
		"path":       path,
		"topic":      topic,
		"routingKey": routingKey,
		"metadata":   metadata,
		"body":       string(body),
	}
	if partition != nil {
		env["partition"] = int(*partition)
	}
	if qos != nil {
		env["qos"] = int(*qos)
	}
	if len(body) > 0 {
		var data interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			env["json"] = data
		}
	}
	return env
}

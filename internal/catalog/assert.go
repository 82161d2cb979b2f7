package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Assertion is a compiled control `assert` expression.
type Assertion struct {
	source string
	prg    cel.Program
}

var (
	envOnce sync.Once
	env     *cel.Env
	envErr  error
)

func assertEnv() (*cel.Env, error) {
	envOnce.Do(func() {
		env, envErr = cel.NewEnv(cel.Variable("value", cel.DynType))
		if envErr != nil {
			envErr = fmt.Errorf("failed to create CEL env: %w", envErr)
		}
	})
	return env, envErr
}

// CompileAssertion compiles src. The expression sees the resolved evidence
// as `value` and must produce a boolean.
func CompileAssertion(src string) (*Assertion, error) {
	e, err := assertEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := e.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("assertion compilation failed: %w", issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("assertion must be boolean, got %s", out)
	}
	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program construction failed: %w", err)
	}
	return &Assertion{source: src, prg: prg}, nil
}

// Eval runs the assertion against value (plain Go form, as produced by
// profile.Value.Interface). A non-boolean result is an error.
func (a *Assertion) Eval(value any) (bool, error) {
	out, _, err := a.prg.Eval(map[string]any{"value": value})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("assertion did not produce a boolean")
	}
	return b, nil
}

func (a *Assertion) String() string { return a.source }

package interp

import "github.com/sdecook/golox/internal/token"

// Call runs a user-defined function: a fresh environment nesting the
// closure, parameters bound to args, and the body executed as a
// block. A `return` unwinds out via execResult; an initializer always
// yields the bound `this`, even for a bare `return;` (spec.md §3/§4.4).
func (f *Function) Call(in *Interpreter, args []Object, paren token.Token) (Object, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := in.executeBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	if result.isReturn {
		return result.value, nil
	}
	return nil, nil
}

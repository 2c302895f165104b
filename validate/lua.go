package validate

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lineedit/document"
)

// LuaValidator runs a user-supplied Lua script as a validator. The script
// must define a global function
//
//	function validate(text)
//
// returning nothing (or nil) for valid input, or (position, message) for
// rejected input, where position is a 0-based cursor position.
//
// gopher-lua states are not goroutine-safe; all calls are serialized on an
// internal mutex.
type LuaValidator struct {
	mu sync.Mutex
	L  *lua.LState
}

// NewLuaValidator compiles the script and verifies it defines validate().
// Close must be called to release the Lua state.
func NewLuaValidator(script string) (*LuaValidator, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading validator script: %w", err)
	}
	if L.GetGlobal("validate").Type() != lua.LTFunction {
		L.Close()
		return nil, errors.New("validator script does not define validate()")
	}
	return &LuaValidator{L: L}, nil
}

// Validate implements Validator.
func (v *LuaValidator) Validate(doc *document.Document) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal("validate")
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, lua.LString(doc.Text())); err != nil {
		return fmt.Errorf("running validator script: %w", err)
	}

	pos := v.L.Get(-2)
	msg := v.L.Get(-1)
	v.L.Pop(2)

	if msg.Type() == lua.LTNil && pos.Type() == lua.LTNil {
		return nil
	}

	verr := &ValidationError{Message: lua.LVAsString(msg)}
	if n, ok := pos.(lua.LNumber); ok {
		verr.CursorPosition = int(n)
	}
	return verr
}

// Close releases the Lua state. The validator must not be used afterwards.
func (v *LuaValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.L.Close()
}

// Package script runs Lua scripts against a seeded random stream.
//
// Scripts see a sandboxed standard library (base, string, table, math) with
// file loaders removed. Randomness comes only from the stream: math.random is
// rebound to it and a global rng table exposes the stream directly:
//
//	rng.next()          -- float in [0, 1)
//	rng.uint32()        -- raw 32-bit word
//	rng.int(n)          -- integer in [1, n]
//	rng.int(m, n)       -- integer in [m, n]
//	rng.roll("2d6+1")   -- total, faces
//	rng.position()      -- words drawn so far
//
// print writes to the caller's writer, so a script run is fully reproducible
// from its seed.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/seedrand/internal/core/dice"
)

// hookInterval is how many VM instructions run between context checks.
const hookInterval = 1000

// maxIntervalSpan bounds rng.int and math.random ranges: one draw carries
// only 32 bits, so wider spans cannot reach every value.
const maxIntervalSpan = 1 << 32

// Source is the stream a script draws from. *random.Stream satisfies it.
type Source interface {
	Next() float64
	Uint32() uint32
	Position() uint64
}

// Run loads code under name and executes it to completion.
func Run(ctx context.Context, src Source, name, code string, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if src == nil {
		return errors.New("random source is required")
	}
	if out == nil {
		out = io.Discard
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "script"
	}

	state := lua.NewState()
	openSandbox(state)
	b := &binding{ctx: ctx, src: src, out: out}
	b.register(state)
	lua.SetDebugHook(state, func(l *lua.State, _ lua.Debug) { b.live(l) }, lua.MaskCount, hookInterval)

	if err := lua.LoadBuffer(state, code, "="+name, "t"); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

var sandboxLibraries = []lua.RegistryFunction{
	{Name: "_G", Function: lua.BaseOpen},
	{Name: "string", Function: lua.StringOpen},
	{Name: "table", Function: lua.TableOpen},
	{Name: "math", Function: lua.MathOpen},
}

var removedGlobals = []string{"dofile", "loadfile", "require"}

func openSandbox(state *lua.State) {
	for _, lib := range sandboxLibraries {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}
	for _, name := range removedGlobals {
		state.PushNil()
		state.SetGlobal(name)
	}
}

type binding struct {
	ctx context.Context
	src Source
	out io.Writer
}

func (b *binding) register(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "next", Function: b.rngNext},
		{Name: "uint32", Function: b.rngUint32},
		{Name: "int", Function: b.rngInt},
		{Name: "roll", Function: b.rngRoll},
		{Name: "position", Function: b.rngPosition},
	}, 0)
	state.SetGlobal("rng")

	state.Global("math")
	state.PushGoFunction(b.mathRandom)
	state.SetField(-2, "random")
	state.PushGoFunction(b.mathRandomSeed)
	state.SetField(-2, "randomseed")
	state.Pop(1)

	state.Register("print", b.print)
}

func (b *binding) live(state *lua.State) {
	if err := b.ctx.Err(); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
}

func (b *binding) rngNext(state *lua.State) int {
	b.live(state)
	state.PushNumber(b.src.Next())
	return 1
}

func (b *binding) rngUint32(state *lua.State) int {
	b.live(state)
	state.PushInteger(int(b.src.Uint32()))
	return 1
}

func (b *binding) rngPosition(state *lua.State) int {
	state.PushInteger(int(b.src.Position()))
	return 1
}

func (b *binding) rngInt(state *lua.State) int {
	b.live(state)
	low, high := 1, lua.CheckInteger(state, 1)
	if state.Top() >= 2 {
		low, high = high, lua.CheckInteger(state, 2)
	}
	state.PushInteger(b.between(state, low, high, state.Top()))
	return 1
}

// mathRandom follows Lua's math.random argument rules.
func (b *binding) mathRandom(state *lua.State) int {
	b.live(state)
	switch state.Top() {
	case 0:
		state.PushNumber(b.src.Next())
	case 1:
		high := lua.CheckInteger(state, 1)
		state.PushInteger(b.between(state, 1, high, 1))
	case 2:
		low := lua.CheckInteger(state, 1)
		high := lua.CheckInteger(state, 2)
		state.PushInteger(b.between(state, low, high, 2))
	default:
		lua.Errorf(state, "wrong number of arguments")
	}
	return 1
}

func (b *binding) mathRandomSeed(state *lua.State) int {
	lua.Errorf(state, "math.randomseed is disabled; the stream is seeded by the caller")
	return 0
}

// between draws an integer in [low, high]. arg names the argument blamed
// when the interval is empty or too wide.
func (b *binding) between(state *lua.State, low, high, arg int) int {
	lua.ArgumentCheck(state, low <= high, arg, "interval is empty")
	span := uint64(high) - uint64(low) + 1
	lua.ArgumentCheck(state, span != 0 && span <= maxIntervalSpan, arg, "interval is too large")
	return low + int(uint64(b.src.Next()*float64(span)))
}

func (b *binding) rngRoll(state *lua.State) int {
	b.live(state)
	expr := lua.CheckString(state, 1)
	notation, err := dice.ParseNotation(expr)
	if err != nil {
		lua.ArgumentError(state, 1, err.Error())
		return 0
	}
	result, err := dice.RollWith(b.src, notation.Dice, notation.Modifier)
	if err != nil {
		lua.ArgumentError(state, 1, err.Error())
		return 0
	}

	state.PushInteger(result.Total)
	state.NewTable()
	i := 1
	for _, r := range result.Rolls {
		for _, face := range r.Results {
			state.PushInteger(face)
			state.RawSetInt(-2, i)
			i++
		}
	}
	return 2
}

func (b *binding) print(state *lua.State) int {
	n := state.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, ok := lua.ToStringMeta(state, i)
		if !ok {
			lua.Errorf(state, "'tostring' must return a string to 'print'")
		}
		parts = append(parts, s)
		state.Pop(1)
	}
	if _, err := fmt.Fprintln(b.out, strings.Join(parts, "\t")); err != nil {
		lua.Errorf(state, "print: %s", err.Error())
	}
	return 0
}

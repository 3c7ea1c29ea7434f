package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"occir/internal/ir"
)

// main demonstrates the optimizer core on a small canned function:
//
//	occir [flags]
//
// flags is the optimization-flag mini-language from ir.ParseFlags
// (f/g/i/l/p/s/a, optionally '-'-prefixed). Defaults to "a" (all passes).
func main() {
	flags := "a"
	if len(os.Args) > 1 {
		flags = os.Args[1]
	}

	commonlog.Configure(1, nil)
	logger := commonlog.GetLogger("occir")

	pool := ir.NewPool()
	program := &ir.IR{Funcs: []*ir.Func{demoFunc()}}

	color.Cyan("before:")
	fmt.Println(program.Dump())

	opt := ir.NewOptimizer(pool)
	opt.Logger = logger
	iters := opt.Run(program, ir.ParseFlags([]byte(flags)))

	color.Green("after (%d iteration(s)):", iters)
	fmt.Println(program.Dump())
}

// demoFunc builds `(2 + 3) * x + 0` to show constant folding, the ADD
// identity rule and operand commutation in one pass.
func demoFunc() *ir.Func {
	f := ir.NewFunc("demo")
	two := f.Append(ir.KIntIns(ir.I32, 2))
	three := f.Append(ir.KIntIns(ir.I32, 3))
	sum := f.Append(ir.BinIns(ir.ADD, ir.I32, two, three))
	x := f.Append(ir.ParamIns(ir.I32, 0))
	mul := f.Append(ir.BinIns(ir.MUL, ir.I32, sum, x))
	zero := f.Append(ir.KIntIns(ir.I32, 0))
	result := f.Append(ir.BinIns(ir.ADD, ir.I32, mul, zero))
	f.Entry = f.Append(ir.RetIns(ir.I32, int32(result)))
	return f
}

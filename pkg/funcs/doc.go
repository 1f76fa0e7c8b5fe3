// Package funcs implements the fixed catalog of functions available inside
// templates.
//
// Every function receives its arguments as value.Value and returns a single
// value.Value. Argument counts are checked by Func.Call before the
// implementation runs, so implementations may index args directly. Argument
// kinds are checked by each implementation, and failures carry one of the
// FUNC_ARITY, FUNC_KIND or FUNC_VALUE codes with the function name attached
// as the "func" detail.
//
// Functions that take a "subject" string accept it last, so they compose with
// template pipelines:
//
//	{{ .Env.PATH | splitList ":" | has "/usr/bin" }}
//	{{ .Env.NAME | trimPrefix "app-" | upper }}
package funcs

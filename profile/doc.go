// Package profile provides optional runtime profiling for catlang.
//
// Profiling is backed by [github.com/pkg/profile] and is compiled in only
// with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// Profiles are written to [Profiler.Path], one file per mode (cpu.pprof,
// mem.pprof, ...). The catlang command defaults the path to a "pprof"
// directory in the user cache directory:
//
//	catlang --pprof-mode=cpu run fib.cat
//	go tool pprof -http=: ~/.cache/catlang/pprof/cpu.pprof
//
// The pprof build also imports [net/http/pprof], so a program that serves
// [net/http.DefaultServeMux] exposes the live profiles at /debug/pprof/.
package profile

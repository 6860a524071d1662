// Package profile provides optional runtime profiling for the stsig command.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag [Modes] is empty and [Config.Start]
// always returns a no-op [Stopper].
//
// # Modes
//
// With the tag, the supported modes are allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, and trace. Each writes <mode>.pprof (or trace.out)
// to the configured directory:
//
//	p := profile.Make(
//	    profile.WithMode("cpu"),
//	    profile.WithDir("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// The tagged build also imports [net/http/pprof], so a program that serves
// [net/http.DefaultServeMux] exposes /debug/pprof/ as well.
//
// # Command line
//
//	go build -tags pprof -o stsig .
//	./stsig --pprof-mode cpu check site.yaml
//	go tool pprof -http=: ~/.cache/stsig/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling. It also names the
// cache subdirectory that receives profile output by default.
const Tag = `pprof`

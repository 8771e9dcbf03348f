// Command bechirp builds a band-excitation chirp and drives a two-channel
// DAC with it.
//
// Usage:
//
//	bechirp [--config file] <command> [flags]
//
// Examples:
//
//	bechirp run
//	bechirp run --sink file --path excitation.bin
//	bechirp run --sink mqtt --broker mqtt://localhost:1883/lab/dac0
//	bechirp analyze --center-freq 250e3 --bandwidth 40e3
//	bechirp export --out chirp.csv
//	bechirp config
//
// Every config key can be overridden from the environment with a BECHIRP_
// prefix, e.g. BECHIRP_CHIRP_POINTS=2000. glog flags (--v, --logtostderr)
// are accepted on every command.
package main

func main() {
	Execute()
}

// Package chirp generates linear-frequency-sweep excitation waveforms for
// band-excitation measurements.
//
// The sweep term is f(t) = f1 + (f2-f1)/(2T)·t and the sample value is
// A·sin(2π·t·f(t)). Because the phase is t·f(t), its derivative (the
// instantaneous frequency) runs from f1 at t=0 to f2 at t=T.
//
// # Usage
//
//	p := chirp.Params{
//	    StartFreq: 470e3, EndFreq: 530e3,
//	    Duration: 4e-3, Samples: 1000, Amplitude: 1,
//	}
//	x, err := p.Generate()
//
// Set Reverse to time-reverse the generated sequence (a down-chirp that
// ends where the up-chirp started).
package chirp

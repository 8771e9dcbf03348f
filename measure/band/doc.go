// Package band inspects synthesized excitation waveforms in the frequency
// domain: where the energy peaks, how much of it lands in the intended
// excitation band, and how quiet the waveform edges are.
//
// The waveform is analyzed at its own sampling rate. A band above Nyquist is
// folded into [0, fs/2] by testing every alias image of each FFT bin, so a
// 470–530 kHz sweep sampled at 250 kHz is still measured correctly.
//
//	r, err := band.Analyze(x, 250e3, band.Options{Low: 470e3, High: 530e3})
//	fmt.Printf("peak %.0f Hz, %.1f%% in band\n", r.PeakFreq, 100*r.InBandRatio)
package band

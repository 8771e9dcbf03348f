// Package dac packs two float waveforms into the interleaved 32-bit word
// stream of a two-channel DAC and drives a Device through the
// allocate / configure / transfer / start / release sequence.
//
// # Word layout
//
// Each word carries one sample per channel as a 16-bit two's complement
// code: channel 0 in bits 0..15, channel 1 in bits 16..31.
//
//	word = uint32(uint16(ch1)) << 16 | uint32(uint16(ch0))
//
// This is the DMA layout consumed by the device and must not change.
//
// # Devices
//
// Zmod models a 14-bit two-channel DAC (±1.25 V or ±5 V per channel,
// 100 MHz base clock). It converts volts to codes with per-channel
// calibration and hands finished frames to an Output: MemoryOutput,
// FileOutput, or the MQTT publisher in dac/mqttsink.
//
// Use WithBuffer so the buffer is released on every exit path:
//
//	err := dac.WithBuffer(dev, len(ch0), func(buf *dac.Buffer) error {
//	    if err := dac.Pack(buf, ch0, ch1, dev); err != nil {
//	        return err
//	    }
//	    if err := dev.Transfer(buf); err != nil {
//	        return err
//	    }
//	    return dev.Start()
//	})
package dac

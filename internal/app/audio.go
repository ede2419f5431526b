package app

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	sfxVolume = 0.5
)

// AudioSystem plays short procedural effects for waves and explosions.
// Entirely optional: a failed init leaves the app silent.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// activeBursts caps simultaneous explosion sounds to avoid clipping.
var activeBursts int32

func InitAudio() error {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlayWaveSweep plays a soft rising band sweep when a wave spawns.
func PlayWaveSweep() { play(genWaveSweep()) }

// PlayExplosion plays a decaying noise burst.
func PlayExplosion() {
	if atomic.LoadInt32(&activeBursts) >= 2 {
		return
	}
	atomic.AddInt32(&activeBursts, 1)
	play2(genExplosion(), func() { atomic.AddInt32(&activeBursts, -1) })
}

func play(samples []float32) { play2(samples, nil) }

func play2(samples []float32, done func()) {
	if globalAudio == nil || len(samples) == 0 {
		if done != nil {
			done()
		}
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		if done != nil {
			done()
		}
		return
	}
	go func() {
		if done != nil {
			defer done()
		}
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// genWaveSweep: a quiet sine sweeping upward with a cosine envelope.
func genWaveSweep() []float32 {
	dur := 0.9
	n := int(dur * sampleRate)
	out := make([]float32, n*channelCount)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		frac := t / dur
		freq := 180.0 + 340.0*frac
		phase += 2 * math.Pi * freq / sampleRate
		env := 0.5 * (1 - math.Cos(2*math.Pi*math.Min(frac, 1)))
		v := float32(math.Sin(phase) * env * 0.22)
		out[2*i] = v
		out[2*i+1] = v
	}
	return out
}

// genExplosion: low-passed white noise with an exponential decay.
func genExplosion() []float32 {
	dur := 0.7
	n := int(dur * sampleRate)
	out := make([]float32, n*channelCount)
	seed := uint64(0x9E3779B97F4A7C15)
	lp := 0.0
	for i := 0; i < n; i++ {
		seed ^= seed >> 12
		seed ^= seed << 25
		seed ^= seed >> 27
		noise := float64(int64(seed*2685821657736338717)>>40) / float64(1<<23)
		lp += (noise - lp) * 0.12
		t := float64(i) / sampleRate
		env := math.Exp(-6.0 * t / dur)
		v := float32(lp * env * 0.8)
		out[2*i] = v
		out[2*i+1] = v
	}
	return out
}

// soundReader streams float32 samples as little-endian bytes.
type soundReader struct {
	data []float32
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := 0
	for r.pos < len(r.data) && n+4 <= len(p) {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(r.data[r.pos]))
		n += 4
		r.pos++
	}
	return n, nil
}

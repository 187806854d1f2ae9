package voice

import (
	"errors"
	"sync"
	"time"
)

var errContextClosed = errors.New("contexto de audio fechado")

// Devices abre os recursos de audio de uma sessao. Cada abertura de sessao
// pede recursos novos.
type Devices interface {
	OpenCapture() (Capture, error)
	OpenInput(sampleRate int) (AudioContext, error)
	OpenOutput(sampleRate int) (OutputContext, error)
}

// Capture entrega amostras do microfone a InputSampleRate.
type Capture interface {
	Frames() <-chan []float32
	Stop()
}

type AudioContext interface {
	Close() error
}

// OutputContext toca buffers em instantes absolutos do seu proprio relogio.
type OutputContext interface {
	AudioContext
	CurrentTime() float64
	Play(buf Buffer, at float64, onEnded func()) (Playback, error)
}

type Playback interface {
	Stop()
}

// StreamCapture e uma captura alimentada por fora (o navegador, via websocket).
type StreamCapture struct {
	frames chan []float32
	done   chan struct{}
	once   sync.Once
}

func NewStreamCapture(buffer int) *StreamCapture {
	return &StreamCapture{
		frames: make(chan []float32, buffer),
		done:   make(chan struct{}),
	}
}

// Push entrega amostras a captura. Devolve false depois de Stop.
func (c *StreamCapture) Push(samples []float32) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.frames <- samples:
		return true
	case <-c.done:
		return false
	}
}

func (c *StreamCapture) Frames() <-chan []float32 {
	return c.frames
}

func (c *StreamCapture) Stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *StreamCapture) Stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

type nopContext struct{}

func (nopContext) Close() error { return nil }

// ClockOutput e um contexto de saida sem alto-falante: cada buffer agendado
// vai para o sink junto com o instante de inicio, e o fim e simulado por um
// timer no relogio de parede.
type ClockOutput struct {
	mu      sync.Mutex
	started time.Time
	sink    func(buf Buffer, at float64)
	active  map[*clockPlayback]struct{}
	closed  bool
}

func NewClockOutput(sink func(buf Buffer, at float64)) *ClockOutput {
	return &ClockOutput{
		started: time.Now(),
		sink:    sink,
		active:  make(map[*clockPlayback]struct{}),
	}
}

func (o *ClockOutput) CurrentTime() float64 {
	return time.Since(o.started).Seconds()
}

func (o *ClockOutput) Play(buf Buffer, at float64, onEnded func()) (Playback, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil, errContextClosed
	}

	if o.sink != nil {
		o.sink(buf, at)
	}

	p := &clockPlayback{out: o}
	wait := time.Duration((at + buf.Duration() - o.CurrentTime()) * float64(time.Second))
	p.timer = time.AfterFunc(wait, func() {
		if !o.remove(p) {
			return
		}
		if onEnded != nil {
			onEnded()
		}
	})
	o.active[p] = struct{}{}
	return p, nil
}

func (o *ClockOutput) remove(p *clockPlayback) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.active[p]; !ok {
		return false
	}
	delete(o.active, p)
	return true
}

// Active devolve quantos buffers ainda nao terminaram.
func (o *ClockOutput) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.active)
}

func (o *ClockOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	for p := range o.active {
		p.timer.Stop()
		delete(o.active, p)
	}
	return nil
}

type clockPlayback struct {
	out   *ClockOutput
	timer *time.Timer
}

// Stop cancela o buffer sem disparar o callback de fim.
func (p *clockPlayback) Stop() {
	if p.out.remove(p) {
		p.timer.Stop()
	}
}

// BridgeDevices liga uma sessao a uma captura externa e a um sink de audio.
type BridgeDevices struct {
	Capture *StreamCapture
	Sink    func(buf Buffer, at float64)
}

func (d BridgeDevices) OpenCapture() (Capture, error) {
	if d.Capture == nil || d.Capture.Stopped() {
		return nil, errors.New("microfone indisponivel")
	}
	return d.Capture, nil
}

func (d BridgeDevices) OpenInput(int) (AudioContext, error) {
	return nopContext{}, nil
}

func (d BridgeDevices) OpenOutput(int) (OutputContext, error) {
	return NewClockOutput(d.Sink), nil
}

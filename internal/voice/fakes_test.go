package voice

import (
	"context"
	"errors"
	"sync"
)

type fakeConn struct {
	incoming chan ServerMessage
	failures chan error
	closedCh chan struct{}

	mu            sync.Mutex
	audio         []AudioChunk
	toolResponses []ToolResponse
	closeCalls    int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan ServerMessage),
		failures: make(chan error, 1),
		closedCh: make(chan struct{}),
	}
}

func (c *fakeConn) SendAudio(chunk AudioChunk) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audio = append(c.audio, chunk)
	return nil
}

func (c *fakeConn) SendToolResponse(resp ToolResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolResponses = append(c.toolResponses, resp)
	return nil
}

func (c *fakeConn) Receive() (ServerMessage, error) {
	select {
	case <-c.closedCh:
		return ServerMessage{}, errors.New("conexao fechada")
	default:
	}
	select {
	case msg := <-c.incoming:
		return msg, nil
	case err := <-c.failures:
		return ServerMessage{}, err
	case <-c.closedCh:
		return ServerMessage{}, errors.New("conexao fechada")
	}
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCalls++
	if c.closeCalls == 1 {
		close(c.closedCh)
	}
	return errors.New("fechar sempre falha no fake")
}

// deliver entrega uma mensagem e falha se a sessao nao estiver mais lendo.
func (c *fakeConn) deliver(msg ServerMessage) bool {
	select {
	case c.incoming <- msg:
		return true
	case <-c.closedCh:
		return false
	}
}

func (c *fakeConn) sentAudio() []AudioChunk {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]AudioChunk(nil), c.audio...)
}

func (c *fakeConn) sentToolResponses() []ToolResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ToolResponse(nil), c.toolResponses...)
}

func (c *fakeConn) closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCalls
}

type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	cfgs  []SessionConfig
	err   error
	// block segura o Dial ate o contexto ser cancelado.
	block bool
}

func (d *fakeDialer) Dial(ctx context.Context, cfg SessionConfig) (Conn, error) {
	d.mu.Lock()
	d.cfgs = append(d.cfgs, cfg)
	err, block := d.err, d.block
	d.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	conn := newFakeConn()
	d.mu.Lock()
	d.conns = append(d.conns, conn)
	d.mu.Unlock()
	return conn, nil
}

func (d *fakeDialer) conn(i int) *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= len(d.conns) {
		return nil
	}
	return d.conns[i]
}

func (d *fakeDialer) config(i int) SessionConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfgs[i]
}

func (d *fakeDialer) dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cfgs)
}

type fakeCapture struct {
	frames chan []float32

	mu      sync.Mutex
	stopped bool
}

func (c *fakeCapture) Frames() <-chan []float32 { return c.frames }

func (c *fakeCapture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

func (c *fakeCapture) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

type fakeContext struct {
	mu     sync.Mutex
	closed bool
}

func (c *fakeContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeContext) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type scheduledPlay struct {
	at       float64
	duration float64
	onEnded  func()
	playback *fakePlayback
}

type fakePlayback struct {
	mu      sync.Mutex
	stopped bool
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

func (p *fakePlayback) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type fakeOutput struct {
	fakeContext

	mu    sync.Mutex
	now   float64
	plays []scheduledPlay
}

func (o *fakeOutput) CurrentTime() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now
}

func (o *fakeOutput) Play(buf Buffer, at float64, onEnded func()) (Playback, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	p := &fakePlayback{}
	o.plays = append(o.plays, scheduledPlay{at: at, duration: buf.Duration(), onEnded: onEnded, playback: p})
	return p, nil
}

func (o *fakeOutput) setNow(now float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.now = now
}

func (o *fakeOutput) scheduled() []scheduledPlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]scheduledPlay(nil), o.plays...)
}

type fakeDevices struct {
	mu       sync.Mutex
	captures []*fakeCapture
	inputs   []*fakeContext
	outputs  []*fakeOutput
	micErr   error
}

func (d *fakeDevices) OpenCapture() (Capture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.micErr != nil {
		return nil, d.micErr
	}
	c := &fakeCapture{frames: make(chan []float32, 8)}
	d.captures = append(d.captures, c)
	return c, nil
}

func (d *fakeDevices) OpenInput(int) (AudioContext, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := &fakeContext{}
	d.inputs = append(d.inputs, c)
	return c, nil
}

func (d *fakeDevices) OpenOutput(int) (OutputContext, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := &fakeOutput{}
	d.outputs = append(d.outputs, o)
	return o, nil
}

func (d *fakeDevices) capture(i int) *fakeCapture {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.captures[i]
}

func (d *fakeDevices) input(i int) *fakeContext {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputs[i]
}

func (d *fakeDevices) output(i int) *fakeOutput {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outputs[i]
}

type recorder struct {
	mu        sync.Mutex
	snapshots []Snapshot
	paths     []string
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnChange: func(s Snapshot) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.snapshots = append(r.snapshots, s)
		},
		Navigate: func(path string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.paths = append(r.paths, path)
		},
	}
}

func (r *recorder) navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// sawLine diz se alguma notificacao trouxe a linha na transcricao.
func (r *recorder) sawLine(text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.snapshots {
		for _, l := range s.Transcript {
			if l.Text == text {
				return true
			}
		}
	}
	return false
}

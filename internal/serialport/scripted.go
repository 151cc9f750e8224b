package serialport

import (
	"sync"
	"time"

	"github.com/banshee-data/touchbridge/internal/timeutil"
)

// ScriptedPort replays a fixed byte script every interval, behaving like a
// sensor that is polled with a read timeout. It backs the -dev mode of the
// command so the pipeline can run without hardware.
type ScriptedPort struct {
	mu       sync.Mutex
	script   []byte
	interval time.Duration
	timeout  time.Duration
	pos      int
	next     time.Time
	closed   bool
	clock    timeutil.Clock
}

// NewScriptedPort returns a port that emits script immediately and then
// again every interval.
func NewScriptedPort(script []byte, interval time.Duration) *ScriptedPort {
	return &ScriptedPort{
		script:   append([]byte(nil), script...),
		interval: interval,
		timeout:  DefaultReadTimeout,
		pos:      len(script),
		clock:    timeutil.RealClock{},
	}
}

// SetClock replaces the clock used to pace the script.
func (p *ScriptedPort) SetClock(c timeutil.Clock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = c
}

// Read implements io.Reader.
func (p *ScriptedPort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	if p.pos >= len(p.script) {
		now := p.clock.Now()
		if now.Before(p.next) {
			wait := p.next.Sub(now)
			if wait > p.timeout {
				wait = p.timeout
			}
			clock := p.clock
			p.mu.Unlock()
			clock.Sleep(wait)
			p.mu.Lock()
			return 0, nil
		}
		p.pos = 0
		p.next = now.Add(p.interval)
	}
	n := copy(buf, p.script[p.pos:])
	p.pos += n
	return n, nil
}

// SetReadTimeout implements TimeoutSerialPorter.
func (p *ScriptedPort) SetReadTimeout(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = timeout
	return nil
}

// Close implements io.Closer.
func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

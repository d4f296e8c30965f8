package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fileFlushEvery bounds how many lines the file sink may buffer before a
// forced flush.
const fileFlushEvery = 16

// asyncSink decouples log emission from terminal and disk latency. Lines are
// queued and drained by a single goroutine into at most two sinks: the
// console, flushed per line so output is visible immediately, and an
// optional log file, flushed every fileFlushEvery lines and on Flush/Close.
type asyncSink struct {
	queue    chan []byte
	flushReq chan chan error
	done     chan struct{}
	closing  sync.Once

	// console, file and pending are touched only by the drain goroutine.
	console *bufio.Writer
	file    *bufio.Writer
	pending int

	mu       sync.Mutex
	writeErr error
}

func newAsyncSink(console, file io.Writer, bufSize int) *asyncSink {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	s := &asyncSink{
		queue:    make(chan []byte, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
	}
	if console != nil {
		s.console = bufio.NewWriterSize(console, bufSize)
	}
	if file != nil {
		s.file = bufio.NewWriterSize(file, bufSize)
	}
	go s.drain()
	return s
}

func (s *asyncSink) drain() {
	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				s.setErr(s.flushSinks())
				close(s.done)
				return
			}
			s.setErr(s.writeLine(line))
		case ack := <-s.flushReq:
			ack <- s.flushSinks()
		}
	}
}

func (s *asyncSink) writeLine(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	if s.console != nil {
		if _, err := s.console.Write(line); err != nil {
			return err
		}
		if err := s.console.Flush(); err != nil {
			return err
		}
	}
	if s.file != nil {
		if _, err := s.file.Write(line); err != nil {
			return err
		}
		s.pending++
		if s.pending >= fileFlushEvery {
			s.pending = 0
			return s.file.Flush()
		}
	}
	return nil
}

func (s *asyncSink) flushSinks() error {
	var errs []error
	if s.console != nil {
		if err := s.console.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.file != nil {
		s.pending = 0
		if err := s.file.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Write queues one rendered line. A full queue blocks the caller rather than
// dropping logs.
func (s *asyncSink) Write(line []byte) error {
	if err := s.getErr(); err != nil {
		return err
	}
	if len(line) == 0 {
		return nil
	}
	buf := make([]byte, len(line))
	copy(buf, line)
	s.queue <- buf
	return nil
}

// Flush waits until both sinks have flushed everything queued so far.
func (s *asyncSink) Flush() error {
	if err := s.getErr(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	s.flushReq <- ack
	return <-ack
}

// Close drains the queue, flushes both sinks and reports the first write
// error encountered over the sink's lifetime.
func (s *asyncSink) Close() error {
	s.closing.Do(func() {
		close(s.queue)
	})
	<-s.done
	return s.getErr()
}

func (s *asyncSink) getErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}

func (s *asyncSink) setErr(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr == nil {
		s.writeErr = err
	}
}

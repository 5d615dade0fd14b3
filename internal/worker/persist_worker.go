// Package worker contains the asynchronous persistence writer. Stores update
// in-memory state synchronously and enqueue writes here, so no user command
// ever blocks on the adapter. In-memory state stays authoritative: a failed
// write is logged and dropped, never retried or rolled back.
package worker

import (
	"context"
	"time"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

const writeTimeout = 5 * time.Second

type op struct {
	key    string
	value  []byte
	remove bool
}

// Writer drains queued save requests into the key-value adapter. It
// implements the services.Saver port.
type Writer struct {
	kv     storage.KV
	logger *log.Logger
	ops    chan op
}

func NewWriter(kv storage.KV, logger *log.Logger, queueSize int) *Writer {
	if queueSize < 1 {
		queueSize = 64
	}
	return &Writer{
		kv:     kv,
		logger: logger.WithComponent(log.ComponentWorker),
		ops:    make(chan op, queueSize),
	}
}

// Save queues an upsert. A full queue drops the write with a warning instead
// of blocking the caller.
func (w *Writer) Save(key string, value []byte) {
	w.enqueue(op{key: key, value: value})
}

// Remove queues a deletion.
func (w *Writer) Remove(key string) {
	w.enqueue(op{key: key, remove: true})
}

func (w *Writer) enqueue(o op) {
	select {
	case w.ops <- o:
	default:
		w.logger.Warn("Persist queue full, dropping write", log.FieldKey, o.key)
	}
}

// Run drains the queue until ctx is cancelled, then flushes whatever is still
// queued before returning. Suitable for errgroup supervision.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case o := <-w.ops:
			w.apply(o)
		case <-ctx.Done():
			w.flush()
			return nil
		}
	}
}

func (w *Writer) apply(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	if o.remove {
		err = w.kv.Delete(ctx, o.key)
	} else {
		err = w.kv.Set(ctx, o.key, o.value)
	}
	if err != nil {
		// Accepted trade-off: memory is authoritative for the session.
		w.logger.Error("Persist write failed", log.FieldKey, o.key, log.FieldError, err)
	}
}

func (w *Writer) flush() {
	for {
		select {
		case o := <-w.ops:
			w.apply(o)
		default:
			return
		}
	}
}

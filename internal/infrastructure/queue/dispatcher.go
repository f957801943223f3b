package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/api/metrics"
	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 15 * time.Second
)

// StatusRecorder stores the outcome of a confirmation email.
type StatusRecorder interface {
	UpdateEmailStatus(ctx context.Context, orderID string, status domain.EmailStatus) error
}

// Template selects the email service and template used for confirmations.
type Template struct {
	ServiceID  string
	TemplateID string
}

// Dispatcher delivers order confirmations on a fixed set of workers, sharded
// by order id. Checkout never waits for the email provider.
type Dispatcher struct {
	workers  []chan ports.OrderEmail
	mailer   ports.Mailer
	statuses StatusRecorder
	tmpl     Template
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, statuses StatusRecorder, tmpl Template, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.OrderEmail, numWorkers),
		mailer:   mailer,
		statuses: statuses,
		tmpl:     tmpl,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderEmail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an email to the worker responsible for its order id. It never
// blocks; when that worker's buffer is full the email is dropped and the
// order keeps its queued status.
func (d *Dispatcher) Enqueue(email ports.OrderEmail) {
	idx := d.shardIndex(email.OrderID)
	select {
	case d.workers[idx] <- email:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.MailDroppedTotal.Inc()
		d.log.Warn().Str("order_id", email.OrderID).Int("worker_id", idx).Msg("mail queue full, confirmation dropped")
	}
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderEmail) {
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.deliver(ctx, id, email)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, email ports.OrderEmail) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	status := domain.EmailSent
	if err := d.mailer.Send(sendCtx, d.tmpl.ServiceID, d.tmpl.TemplateID, email); err != nil {
		status = domain.EmailFailed
		d.log.Error().Err(err).
			Str("order_id", email.OrderID).
			Int("worker_id", worker).
			Msg("confirmation email failed")
	}
	metrics.MailSendDuration.WithLabelValues(string(status)).Observe(time.Since(start).Seconds())

	if err := d.statuses.UpdateEmailStatus(ctx, email.OrderID, status); err != nil {
		d.log.Warn().Err(err).Str("order_id", email.OrderID).Msg("failed to record email status")
	}
}

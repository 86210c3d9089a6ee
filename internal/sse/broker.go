package sse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
)

// client is a single connected subscriber with its own buffered channel.
// The mutex serializes send and close: both run on different goroutines
// (broadcast loop vs. disconnect reaper), and a send racing the channel
// close would panic.
type client struct {
	id     string
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func newClient(ctx context.Context, bufferSize int) *client {
	clientCtx, cancel := context.WithCancel(ctx)
	return &client{
		id:     uuid.NewString(),
		events: make(chan Event, bufferSize),
		ctx:    clientCtx,
		cancel: cancel,
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.events)
}

// send attempts a non-blocking delivery. Returns false when the client is
// closed or its buffer is full (slow client).
func (c *client) send(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}

// Broker fans dashboard events out to all connected subscribers.
type Broker struct {
	logger  logger.Logger
	clients map[string]*client
	mu      sync.RWMutex

	publish chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	clientBufferSize int
	shutdownTimeout  time.Duration
	maxClients       int
}

// NewBroker creates an SSE broker with default buffer sizes.
func NewBroker(log logger.Logger) *Broker {
	return &Broker{
		logger:           log,
		clients:          make(map[string]*client),
		publish:          make(chan Event, DefaultEventBufferSize),
		clientBufferSize: DefaultClientBufferSize,
		shutdownTimeout:  DefaultShutdownTimeout,
		maxClients:       DefaultMaxClients,
	}
}

// Start begins distributing events. Non-blocking.
func (b *Broker) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(1)
	go b.broadcastLoop()

	b.logger.Info("SSE broker started",
		logger.Int("client_buffer_size", b.clientBufferSize),
		logger.Int("max_clients", b.maxClients),
	)
}

// Stop gracefully shuts down the broker.
func (b *Broker) Stop() {
	if b.cancel != nil {
		b.cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("SSE broker stopped")
	case <-time.After(b.shutdownTimeout):
		b.logger.Warn("SSE broker shutdown timeout exceeded")
	}
}

// Publish queues an event for all connected clients. The publish buffer is
// never blocked on; a full buffer drops the event.
func (b *Broker) Publish(event Event) error {
	select {
	case b.publish <- event:
		return nil
	default:
		return fmt.Errorf("publish buffer full (dropped event: %s)", event.Type)
	}
}

// Subscribe registers a new client. The returned channel closes on client
// disconnect or broker shutdown; cleanup must be called when done.
func (b *Broker) Subscribe(ctx context.Context) (events <-chan Event, cleanup func()) {
	b.mu.RLock()
	current := len(b.clients)
	b.mu.RUnlock()

	if b.maxClients > 0 && current >= b.maxClients {
		b.logger.Warn("Max SSE clients reached, rejecting connection",
			logger.Int("max_clients", b.maxClients),
		)
		closed := make(chan Event)
		close(closed)
		return closed, func() {}
	}

	c := newClient(ctx, b.clientBufferSize)

	b.mu.Lock()
	b.clients[c.id] = c
	b.mu.Unlock()

	b.logger.Debug("SSE client subscribed",
		logger.String("client_id", c.id),
		logger.Int("total_clients", b.ClientCount()),
	)

	c.send(Event{Type: eventTypeConnected, Data: map[string]string{"client_id": c.id}})

	b.wg.Add(1)
	go b.reapOnDisconnect(c)

	return c.events, func() { b.removeClient(c.id) }
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broker) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.publish:
			b.broadcast(event)
		case <-b.ctx.Done():
			b.disconnectAll()
			return
		}
	}
}

func (b *Broker) broadcast(event Event) {
	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		if !c.send(event) {
			b.logger.Warn("SSE client buffer full, closing slow connection",
				logger.String("client_id", c.id),
				logger.String("event_type", event.Type),
			)
			b.removeClient(c.id)
		}
	}
}

func (b *Broker) reapOnDisconnect(c *client) {
	defer b.wg.Done()
	<-c.ctx.Done()
	b.removeClient(c.id)
}

func (b *Broker) removeClient(clientID string) {
	b.mu.Lock()
	c, exists := b.clients[clientID]
	if exists {
		delete(b.clients, clientID)
	}
	b.mu.Unlock()

	if exists {
		c.close()
	}
}

func (b *Broker) disconnectAll() {
	b.mu.Lock()
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.clients = make(map[string]*client)
	b.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Table names used on the change bus. Every successful write to one of these
// tables publishes its name; subscribers re-fetch the whole table on receipt.
const (
	TableCategories    = "categories"
	TablePanchayaths   = "panchayaths"
	TableRegistrations = "registrations"
	TableAdmins        = "admins"
	TableAnnouncements = "announcements"
)

func AllTables() []string {
	return []string{
		TableCategories,
		TablePanchayaths,
		TableRegistrations,
		TableAdmins,
		TableAnnouncements,
	}
}

const channelPrefix = "table_changes:"

// Bus is a Redis pub/sub change-notification bus. A published event carries
// no row payload, only the table name; consumers treat it as "something in
// this table changed, fetch it again".
type Bus struct {
	rdb    *redis.Client
	window time.Duration
}

func NewBus(rdb *redis.Client) *Bus {
	return &Bus{rdb: rdb, window: 300 * time.Millisecond}
}

// Publish announces that rows in table changed.
func (b *Bus) Publish(ctx context.Context, table string) error {
	return b.rdb.Publish(ctx, channelPrefix+table, table).Err()
}

// Subscribe returns a channel of table names. Bursts of notifications for the
// same table within the debounce window are coalesced into a single event, so
// N rapid remote changes cost one re-fetch instead of N.
func (b *Bus) Subscribe(ctx context.Context, tables ...string) <-chan string {
	channels := make([]string, len(tables))
	for i, t := range tables {
		channels[i] = channelPrefix + t
	}

	pubsub := b.rdb.Subscribe(ctx, channels...)
	out := make(chan string, 16)
	deb := newDebouncer(b.window, out)

	go func() {
		defer pubsub.Close()
		defer deb.stop()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				deb.hit(msg.Payload)
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// debouncer emits each key at most once per window, on the trailing edge of
// the first hit. Keys are independent of each other.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*time.Timer
	out     chan<- string
	stopped bool
}

func newDebouncer(window time.Duration, out chan<- string) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*time.Timer),
		out:     out,
	}
}

func (d *debouncer) hit(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if _, scheduled := d.pending[key]; scheduled {
		// already queued, this hit is coalesced into the pending emit
		return
	}
	d.pending[key] = time.AfterFunc(d.window, func() { d.emit(key) })
}

func (d *debouncer) emit(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.pending, key)
	if d.stopped {
		return
	}
	select {
	case d.out <- key:
	default:
		// consumer far behind; dropping is safe because events carry no
		// payload and the next change will trigger another fetch
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}

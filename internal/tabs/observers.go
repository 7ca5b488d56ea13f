package tabs

import (
	"sync"

	"pkt.systems/repoclone/schema"
)

// observers holds repository change callbacks. Callbacks run on the caller's
// goroutine after the owning tab has released its lock.
type observers struct {
	mu  sync.Mutex
	fns []func(*schema.Repository)
}

func (o *observers) add(fn func(*schema.Repository)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.fns = append(o.fns, fn)
	o.mu.Unlock()
}

func (o *observers) notify(repo *schema.Repository) {
	o.mu.Lock()
	fns := make([]func(*schema.Repository), len(o.fns))
	copy(fns, o.fns)
	o.mu.Unlock()
	for _, fn := range fns {
		var copied *schema.Repository
		if repo != nil {
			value := *repo
			copied = &value
		}
		fn(copied)
	}
}

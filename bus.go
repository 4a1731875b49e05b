package folio

import "sync"

// Edit is the editing state pushed from a saved snapshot to the Editor.
type Edit struct {
	TotalInvestment Money
	Tickers         []Allocation
}

// Bus delivers edits from the snapshot Manager to its subscribers.
type Bus interface {
	Publish(Edit)
	// Subscribe registers f, and returns a function that cancels the subscription.
	Subscribe(f func(Edit)) (cancel func())
}

// LocalBus is an in-process Bus. Publish calls every subscriber
// synchronously, in subscription order, before returning.
// Its zero value is ready to use.
type LocalBus struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	f  func(Edit)
}

// NewBus returns an empty LocalBus.
func NewBus() *LocalBus { return &LocalBus{} }

func (b *LocalBus) Subscribe(f func(Edit)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber{id: id, f: f})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *LocalBus) Publish(e Edit) {
	b.mu.Lock()
	subs := append([]subscriber(nil), b.subs...)
	b.mu.Unlock()
	for _, s := range subs {
		// each subscriber gets its own copy of the tickers.
		s.f(Edit{TotalInvestment: e.TotalInvestment, Tickers: cloneAllocations(e.Tickers)})
	}
}

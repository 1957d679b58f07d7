package service

import "sync"

// LedgerNotifier is an explicit observer list for ledger/catalog
// changes. Derived views (alerts, accrual) subscribe and are invoked
// after each mutation; no state is carried, subscribers re-read the
// current snapshot themselves.
type LedgerNotifier struct {
	mu   sync.Mutex
	subs []func()
}

func NewLedgerNotifier() *LedgerNotifier {
	return &LedgerNotifier{}
}

func (n *LedgerNotifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *LedgerNotifier) Publish() {
	n.mu.Lock()
	subs := append([]func(){}, n.subs...)
	n.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

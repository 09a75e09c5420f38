package commands

import "sync"

// CatalogLocks serialise writers per entity kind.
//
// A writer holds the lock of every kind it touches for the whole handler,
// from id allocation or the first read to the commit.
// Handlers needing both take orders first, then couriers.
type CatalogLocks struct {
	orders   sync.Mutex
	couriers sync.Mutex
}

func NewCatalogLocks() *CatalogLocks {
	return &CatalogLocks{}
}

// LockCouriers locks the courier catalogue and returns the unlock function.
func (l *CatalogLocks) LockCouriers() func() {
	l.couriers.Lock()
	return l.couriers.Unlock
}

// LockOrders locks the order catalogue and returns the unlock function.
func (l *CatalogLocks) LockOrders() func() {
	l.orders.Lock()
	return l.orders.Unlock
}

// LockAll takes the order lock, then the courier lock, and releases them in reverse.
func (l *CatalogLocks) LockAll() func() {
	unlockOrders := l.LockOrders()
	unlockCouriers := l.LockCouriers()
	return func() {
		unlockCouriers()
		unlockOrders()
	}
}

package reverb

import "sync/atomic"

func atomicStoreUint32(addr *uint32, v uint32) { atomic.StoreUint32(addr, v) }
func atomicLoadUint32(addr *uint32) uint32      { return atomic.LoadUint32(addr) }

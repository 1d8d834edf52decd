package sim

import (
	"sync"

	"github.com/san-kum/flocksim/internal/flock"
)

// agentPool recycles the pre-tick flock copies made by Step.
type agentPool struct {
	pool sync.Pool
}

func newAgentPool() *agentPool {
	return &agentPool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]flock.Agent, 0, 64)
				return &s
			},
		},
	}
}

func (p *agentPool) GetAndCopy(src []flock.Agent) []flock.Agent {
	buf := p.pool.Get().(*[]flock.Agent)
	dst := append((*buf)[:0], src...)
	return dst
}

func (p *agentPool) Put(s []flock.Agent) {
	s = s[:0]
	p.pool.Put(&s)
}

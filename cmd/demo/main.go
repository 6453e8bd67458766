// Command demo is an illustrative driver wiring a ring of ARC cells
// together: producers publish payloads behind ARC cells into a ring
// buffer, and a single consumer drains them, loading and dropping each
// cell's contents.
package main

import (
	"log"
	"sync"

	"github.com/rishav/lockfree/arc"
	"github.com/rishav/lockfree/ring"
)

type payload struct {
	producer int
	seq      int
}

func main() {
	const (
		capacity  = 64
		producers = 4
		perProd   = 2000
	)

	state := ring.NewState(capacity)
	slots := make([]*arc.Cell[payload], capacity)
	for i := range slots {
		slots[i] = arc.NewCell[payload]()
	}

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer wg.Done()
			cur := ring.NewCursor(state)
			for i := 0; i < perProd; i++ {
				idx := cur.BeginWrite()
				data := payload{producer: p, seq: i}
				local := arc.New(&data, nil, func(ctx interface{}, d *payload) {})
				slots[idx].AtomicStore(local)
				arc.Drop(local)
				cur.CommitWrite()
			}
		}(p)
	}

	total := producers * perProd
	consumer := ring.NewCursor(state)
	counts := make([]int, producers)
	for i := 0; i < total; i++ {
		idx := consumer.BeginRead()
		local := slots[idx].AtomicLoad()
		if !local.IsNull() {
			counts[local.Data().producer]++
		}
		arc.Drop(local)
		consumer.CommitRead()
	}

	wg.Wait()
	for p, c := range counts {
		log.Printf("producer %d: delivered %d/%d items", p, c, perProd)
	}
}

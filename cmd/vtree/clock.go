package main

import (
	"fmt"
	"time"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// clockHistory is how many recent ticks the clock lists.
const clockHistory = 5

// clock is the state behind the Clock component. Tick must run on the
// scheduler goroutine.
type clock struct {
	now   time.Time
	ticks []int
	count int
	inst  vdom.Instance
}

// Tick advances the clock to now.
func (c *clock) Tick(now time.Time) {
	apply := func() {
		c.now = now
		c.count++
		c.ticks = append([]int{c.count}, c.ticks...)
		if len(c.ticks) > clockHistory {
			c.ticks = c.ticks[:clockHistory]
		}
	}
	if c.inst == nil {
		apply()
		return
	}
	c.inst.Update(apply)
}

// Clock shows the current time and a keyed list of recent ticks, newest
// first, so every tick inserts at the front and drops from the end.
var Clock = vdom.Define("Clock", func(init vdom.Props, inst vdom.Instance) vdom.Render {
	c, _ := init["clock"].(*clock)
	if c == nil {
		c = &clock{}
	}
	c.inst = inst
	inst.On(vdom.EventUnmount, func() { c.inst = nil })

	return func(props vdom.Props) vdom.Node {
		now := "--:--:--"
		if !c.now.IsZero() {
			now = c.now.Format(time.TimeOnly)
		}
		ticks := make([]vdom.Node, 0, len(c.ticks))
		for _, n := range c.ticks {
			ticks = append(ticks, vdom.Li(vdom.Key(fmt.Sprint(n)), vdom.Num(n)))
		}
		return vdom.Div(vdom.Class("clock"),
			vdom.Strong(now),
			vdom.Ol(ticks),
		)
	}
})

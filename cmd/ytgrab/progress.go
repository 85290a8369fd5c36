package main

import (
	"time"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// downloadBar adapts an mpb bar to the pipeline's progress callbacks. One bar
// instance may be reused across the stream parts of a merged download; the
// total resets on each Init.
type downloadBar struct {
	pc       *mpb.Progress
	name     string
	bar      *mpb.Bar
	start    time.Time
	lastSize int64
}

func newDownloadBar(pc *mpb.Progress, name string) *downloadBar {
	return &downloadBar{pc: pc, name: name}
}

func (b *downloadBar) Init(total int64) {
	if total <= 0 {
		total = 100 * 1024 * 1024 * 1024
	}
	if b.bar == nil {
		b.bar = b.pc.AddBar(total,
			mpb.BarWidth(12),
			mpb.AppendDecorators(
				decor.AverageSpeed(decor.UnitKB, " %.1f", decor.WC{W: 15, C: decor.DidentRight}),
				decor.Name(b.name),
			),
			mpb.BarRemoveOnComplete(),
		)
	} else {
		b.bar.SetTotal(total, false)
	}
	b.start = time.Now()
	b.lastSize = 0
}

func (b *downloadBar) Update(count int64, total int64) {
	if b.bar == nil {
		return
	}
	if total > 0 {
		b.bar.SetTotal(total, count >= total)
	}
	b.bar.IncrInt64(count-b.lastSize, time.Since(b.start))
	b.lastSize = count
}

// finish aborts a bar that never completed so Progress.Wait cannot block.
func (b *downloadBar) finish() {
	if b.bar != nil && !b.bar.Completed() {
		b.bar.Abort(true)
	}
}

package enrich

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/dtnitsch/lead-enricher/pkg/enricher"
)

// newProgress returns a row progress callback drawing a bar on w and a func
// that finishes the bar.
func newProgress(w io.Writer, total int) (enricher.ProgressFunc, func()) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("enriching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	progress := func(done, total int) {
		_ = bar.Set(done)
	}
	finish := func() {
		_ = bar.Finish()
	}
	return progress, finish
}

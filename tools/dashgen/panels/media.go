package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PictureUploadRate shows picture uploads per second by backend and result.
func PictureUploadRate() *timeseries.PanelBuilder {
	return series("Picture Uploads", "Picture uploads per second by backend and result", TSWidth).
		WithTarget(PromQuery(`card_lister:picture_uploads:rate5m`, "{{backend}} {{result}}", "A")).
		Unit("ops").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// PictureUploadLatency shows p95 latency of a single picture upload.
func PictureUploadLatency() *timeseries.PanelBuilder {
	p := series("Picture Upload Latency", "p95 duration of a single picture upload", TSWidth)
	return withQuantiles(p, "card_lister_picture_upload_duration_seconds_bucket", "5m", 0.95).
		Unit("s")
}

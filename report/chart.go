package report

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Render writes all summary charts as a single HTML page. The charting layer
// only ever sees already-aggregated rows.
func Render(s *Summaries, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "NZ crash statistics"
	page.AddCharts(
		perYearChart(s.PerYear),
		severityChart(s.BySeverity),
		categoryChart("Crashes by cause category", s.ByCauseCategory),
		categoryChart("Vehicle involvement by type", s.ByVehicleType),
		categoryChart("Vehicle involvement in fatal crashes", s.FatalByVehicle),
		categoryChart("Objects struck", s.ByObjectStruck),
	)
	return page.Render(w)
}

func perYearChart(counts []YearCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Crashes per year"}))

	xs := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		xs = append(xs, strconv.Itoa(c.Year))
		data = append(data, opts.BarData{Value: c.Crashes})
	}
	bar.SetXAxis(xs).AddSeries("crashes", data)
	return bar
}

func severityChart(counts []SeverityCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Crashes by severity"}))

	xs := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		xs = append(xs, string(c.Severity))
		data = append(data, opts.BarData{Value: c.Crashes})
	}
	bar.SetXAxis(xs).AddSeries("crashes", data)
	return bar
}

func categoryChart(title string, cats []OrderedCategory) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	xs := make([]string, 0, len(cats))
	data := make([]opts.BarData, 0, len(cats))
	for _, c := range cats {
		xs = append(xs, c.Label)
		data = append(data, opts.BarData{Value: c.Count})
	}
	bar.SetXAxis(xs).AddSeries("count", data)
	return bar
}

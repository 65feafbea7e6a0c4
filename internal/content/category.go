package content

// Category names one of the content surfaces the app can show.
type Category string

const (
	CategoryThesisVideos  Category = "investment_thesis_videos"
	CategoryWeeklyReports Category = "weekly_reports"
	CategoryEtfReports    Category = "etf_reports"
	CategoryNotifications Category = "notifications"
)

// Static per-category configuration: which endpoint serves the list
// and which envelope keys a deployment may wrap it under. Keys are
// tried in order; a bare JSON array is always accepted.
type categoryConfig struct {
	path           string
	envelopeKeys   []string
	filterInactive bool
}

var categories = map[Category]categoryConfig{
	CategoryThesisVideos: {
		path:           "/api/videos",
		envelopeKeys:   []string{"videos", "userguidevideos"},
		filterInactive: true,
	},
	CategoryWeeklyReports: {
		path:           "/api/reports/pdfs/",
		envelopeKeys:   []string{"reports", "pdfs", "data"},
		filterInactive: true,
	},
	CategoryEtfReports: {
		path:           "/api/etf-pdfs",
		envelopeKeys:   []string{"etfpdfs", "reports", "data"},
		filterInactive: true,
	},
	CategoryNotifications: {
		path:         "/api/notifications",
		envelopeKeys: []string{"notifications", "data"},
		// Notifications have no active flag; nothing to filter.
	},
}

// Path returns the endpoint path the category is served from.
func (c Category) Path() string { return categories[c].path }

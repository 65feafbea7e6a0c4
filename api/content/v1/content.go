// Package v1 holds the wire shapes of the remote content API.
//
// The fields mirror what the production endpoints actually return;
// optional fields are pointers or zero-valued when absent.
package v1

// Video is one investment-thesis video.
type Video struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	VideoID     string `json:"videoId"`
	Thumbnail   string `json:"thumbnail"`
	Order       int    `json:"order"`
	Active      *bool  `json:"active,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Report is one weekly report PDF.
type Report struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Date        string `json:"date,omitempty"`
	Category    string `json:"category,omitempty"`
	Active      *bool  `json:"active,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// EtfReport is one ETF report PDF.
type EtfReport struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"fileUrl"`
	Active      *bool  `json:"active,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Notification is one entry in a user's notification feed.
type Notification struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"` // pdf, video, link or announcement
	ImageURL    string   `json:"imageUrl,omitempty"`
	Link        string   `json:"link,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UsersRead   []string `json:"usersRead,omitempty"`
	Global      bool     `json:"global,omitempty"`
}

// The accessors below give the fetch pipeline a uniform view over the
// four shapes for filtering, ordering and sanitizing. A nil Active
// counts as active; only an explicit false hides an item.

func (v Video) ItemID() string    { return v.ID }
func (v Video) ItemTitle() string { return v.Title }
func (v Video) Created() string   { return v.CreatedAt }
func (v Video) IsActive() bool    { return v.Active == nil || *v.Active }

// Sanitized returns a copy with the free-text fields run through
// clean.
func (v Video) Sanitized(clean func(string) string) Video {
	v.Title = clean(v.Title)
	v.Description = clean(v.Description)
	return v
}

func (r Report) ItemID() string    { return r.ID }
func (r Report) ItemTitle() string { return r.Title }
func (r Report) Created() string   { return r.CreatedAt }
func (r Report) IsActive() bool    { return r.Active == nil || *r.Active }

func (r Report) Sanitized(clean func(string) string) Report {
	r.Title = clean(r.Title)
	r.Description = clean(r.Description)
	return r
}

func (e EtfReport) ItemID() string    { return e.ID }
func (e EtfReport) ItemTitle() string { return e.Title }
func (e EtfReport) Created() string   { return e.CreatedAt }
func (e EtfReport) IsActive() bool    { return e.Active == nil || *e.Active }

func (e EtfReport) Sanitized(clean func(string) string) EtfReport {
	e.Title = clean(e.Title)
	e.Description = clean(e.Description)
	return e
}

func (n Notification) ItemID() string    { return n.ID }
func (n Notification) ItemTitle() string { return n.Title }
func (n Notification) Created() string   { return n.CreatedAt }

// Notifications have no active concept.
func (n Notification) IsActive() bool { return true }

func (n Notification) Sanitized(clean func(string) string) Notification {
	n.Title = clean(n.Title)
	n.Description = clean(n.Description)
	return n
}

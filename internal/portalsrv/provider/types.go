// Package provider implements the client for the external
// resource-scheduling provider: OAuth2 client-credentials tokens scoped
// separately for reservations and class schedules, and paginated REST
// listings.
package provider

// Room is the provider's nested room identity. Its key space does not
// align with local resource IDs; resolution happens in the availability
// resolver.
type Room struct {
	ForeignID    *int64 `json:"id"`
	Description  string `json:"description"`
	Abbreviation string `json:"abbreviation"`
}

// Reservation is an ad-hoc booking in the provider.
type Reservation struct {
	ID        string `json:"id"`
	EventName string `json:"event_name"`
	StartDT   string `json:"event_start_dt"`
	EndDT     string `json:"event_end_dt"`
	Room      *Room  `json:"room"`
}

// ClassSchedule is one recurring meeting row of a class. Days is the
// free-text day pattern ("MWF", "Tu/Th", ...).
type ClassSchedule struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      *Room  `json:"room"`
}

// Class is a catalog entry; Status distinguishes active/future classes
// from completed or cancelled ones.
type Class struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

const (
	ClassStatusActive = "active"
	ClassStatusFuture = "future"
)

// page is the provider's standard listing envelope. The raw results are
// decoded per endpoint.
type page[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

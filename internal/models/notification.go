package models

// NotificationPayload is what a subscriber actually receives: the region it
// concerns and that region's full current incident list.
type NotificationPayload struct {
	Location  string     `json:"location"`
	Incidents []Incident `json:"incidents"`
}

// Notification addresses a payload to a single connected user. The scan
// emits one of these per (user, region) pair whose incidents changed since
// the last delivery.
type Notification struct {
	UserID  string              `json:"user_id"`
	Payload NotificationPayload `json:"notification"`
}

// IncidentPush is the immediate-push envelope for a single user-submitted
// incident: the region it was assigned to plus the incident itself.
type IncidentPush struct {
	Location string   `json:"location"`
	Incident Incident `json:"incident"`
}

// MessagePublisher interface for publishing notifications
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}

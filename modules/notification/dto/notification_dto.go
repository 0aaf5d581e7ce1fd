package dto

// RegistrationEmailPayload is the body of an event registration email task.
// EventDate uses the event wire format "YYYY-MM-DD HH:MM:SS".
type RegistrationEmailPayload struct {
	ParticipantID string `json:"participant_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EventDate     string `json:"event_date"`
}

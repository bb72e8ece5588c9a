package contactform

// State is the UI state of the contact form
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSent    State = "sent"
	StateError   State = "error"
)

// Mode selects how a valid submission leaves the client
type Mode string

const (
	// ModeRelay calls the email relay and waits for its answer
	ModeRelay Mode = "relay"
	// ModeMailto hands a pre-filled message to the user's mail agent.
	// Sent then means handed off, never confirmed delivered.
	ModeMailto Mode = "mailto"
)

// Outcome is what the form shows after a submit
type Outcome struct {
	State      State
	StatusText string
	MailtoURI  string
}

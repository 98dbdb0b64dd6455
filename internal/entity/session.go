package entity

// View is the user-visible phase of a session.
type View string

const (
	ViewSetup     View = "setup"
	ViewInterview View = "interview"
	ViewSummary   View = "summary"
)

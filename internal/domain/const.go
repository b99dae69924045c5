package domain

const (
	// Identity constants
	UNRESOLVED_SUBJECT_ID = "unresolved"
)

package entities

// ContinuityStatus is the time-derived state of an event's primary session.
type ContinuityStatus string

const (
	StatusNotStarted         ContinuityStatus = "notStarted"
	StatusInProgressWithRoom ContinuityStatus = "inProgressWithRoom"
	StatusInProgressFull     ContinuityStatus = "inProgressFull"
	StatusUnknown            ContinuityStatus = "unknown"
)

var continuityLabels = map[ContinuityStatus]Labels{
	StatusNotStarted:         {EN: "Starting soon", FR: "Bientôt"},
	StatusInProgressWithRoom: {EN: "Ongoing", FR: "En cours"},
	StatusInProgressFull:     {EN: "Full", FR: "Complet"},
	StatusUnknown:            {EN: "Date to be announced", FR: "Date à venir"},
}

// Labels returns the display labels for the status.
func (s ContinuityStatus) Labels() Labels {
	if l, ok := continuityLabels[s]; ok {
		return l
	}
	return continuityLabels[StatusUnknown]
}

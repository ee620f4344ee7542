package schema

// Form is one survey form as listed by the survey API.
type Form struct {
	Title                        string `json:"title"`
	FormID                       int64  `json:"formId"`
	NumberOfDeliveredSubmissions int    `json:"numberOfDeliveredSubmissions"`
}

// ParticipationReport is the participation file written by the download command.
// It decodes as a Participation.
type ParticipationReport struct {
	Started      int     `json:"started"`
	Answered     int     `json:"answered"`
	Invited      int     `json:"invited"`
	ResponseRate float64 `json:"response_rate"`
}

// NewParticipationReport derives the response rate in percent. Zero invited gives a zero rate.
func NewParticipationReport(answered, invited int) ParticipationReport {
	report := ParticipationReport{Answered: answered, Invited: invited}
	if invited > 0 {
		report.ResponseRate = 100 * float64(answered) / float64(invited)
	}
	return report
}

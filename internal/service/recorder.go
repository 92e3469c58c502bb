package service

// Recorder receives counters for derived and executed work.
type Recorder interface {
	RecordPlayExecuted(result string)
	RecordNotificationDerived(priority string)
	RecordMeetingNotesProcessed()
}

type noopRecorder struct{}

func (noopRecorder) RecordPlayExecuted(string)        {}
func (noopRecorder) RecordNotificationDerived(string) {}
func (noopRecorder) RecordMeetingNotesProcessed()     {}

func recorderOrNoop(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}

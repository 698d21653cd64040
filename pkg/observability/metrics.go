package observability

import "time"

// Outcome labels shared by every recorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder receives application metrics. The server binary uses the
// Prometheus collector and the Lambda binary the CloudWatch sink.
type Recorder interface {
	// RecordAnalysis counts one analyze call
	RecordAnalysis(persisted bool, diagnosisCount int)

	// RecordStoreCall records one history store operation
	RecordStoreCall(operation, outcome string, duration time.Duration)

	// RecordHTTPRequest records one served request
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// NopRecorder discards all metrics
type NopRecorder struct{}

func (NopRecorder) RecordAnalysis(bool, int)                             {}
func (NopRecorder) RecordStoreCall(string, string, time.Duration)        {}
func (NopRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}

// OutcomeOf maps an error to an outcome label
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

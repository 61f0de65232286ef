package apiclient

// Navigator moves the user to another page. The client uses it to send the
// user to the login page once a session cannot be refreshed.
type Navigator interface {
	CurrentPath() string
	Redirect(path string)
}

// Observer receives request and refresh outcomes, e.g. for metrics.
type Observer interface {
	ObserveRequest(api, method string, status int, elapsedSeconds float64)
	ObserveRefresh(api, outcome string)
}

// Refresh outcomes reported to Observer.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshMissing   = "missing_token"
)

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, float64) {}
func (nopObserver) ObserveRefresh(string, string)               {}

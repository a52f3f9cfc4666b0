package retry

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

// Classifier reports whether err is transient and worth retrying
type Classifier func(err error) bool

type statusCoder interface {
	StatusCode() int
}

var transientFragments = []string{"network", "timeout", "failed to fetch"}

// DefaultClassifier retries gateway timeouts, network timeouts and errors whose
// message mentions a network, timeout or fetch failure.
func DefaultClassifier(err error) bool {
	if err == nil {
		return false
	}
	var coder statusCoder
	if errors.As(err, &coder) && coder.StatusCode() == http.StatusGatewayTimeout {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, fragment := range transientFragments {
		if strings.Contains(message, fragment) {
			return true
		}
	}
	return false
}

// Never classifies every error as permanent
func Never(error) bool { return false }

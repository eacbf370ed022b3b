package trigger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/security"
)

// BackgroundTrigger fires a non-blocking self-call to the maintenance
// endpoint. The client timeout is deliberately tiny: the point is to kick the
// maintenance work loose, not to wait for it.
type BackgroundTrigger struct {
	client  *http.Client
	syncURL string
	key     *security.InternalKey
}

func NewBackgroundTrigger(baseURL string, key *security.InternalKey) *BackgroundTrigger {
	return &BackgroundTrigger{
		client: &http.Client{
			Timeout: 100 * time.Millisecond,
		},
		syncURL: strings.TrimSuffix(baseURL, "/") + "/maintenance/sync",
		key:     key,
	}
}

func (t *BackgroundTrigger) Fire() {
	go func() {
		req, err := http.NewRequest("POST", t.syncURL, nil)
		if err != nil {
			slog.Debug("background trigger request failed", "error", err.Error())
			return
		}
		req.Header.Set("X-Internal-Key", t.key.Value())

		resp, err := t.client.Do(req)
		if err != nil {
			// timeouts are the expected outcome here
			slog.Debug("background trigger fired", "error", err.Error())
			return
		}
		resp.Body.Close()
	}()
}

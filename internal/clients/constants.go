package clients

import "time"

const (
	HF_REQUEST_TIMEOUT = 5 * time.Second
	USER_AGENT         = "brandpulse-client/1.0 (+https://github.com/spacesedan/brandpulse)"
)

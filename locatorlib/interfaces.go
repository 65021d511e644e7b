package locatorlib

import "time"

type Logger interface {
	LookupError(address string, err error)
	Access(method, path, remoteAddr string, status int, elapsed time.Duration)
}

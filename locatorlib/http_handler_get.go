package locatorlib

import (
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi"
)

// selfAddress asks to resolve an address of the caller.
const selfAddress = "0.0.0.0"

func (h httpHandler) handleGetLocation(w http.ResponseWriter, req *http.Request) {
	address := chi.URLParam(req, "ip")

	if address == selfAddress {
		host, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			// RealIP sets remote address without a port.
			host = req.RemoteAddr
		}

		address = host
	}

	location, err := h.locator.Lookup(address)
	if err != nil {
		h.sendLookupError(w, err)

		return
	}

	h.sendJSON(w, location)
}

func (h httpHandler) handleGetStats(w http.ResponseWriter, _ *http.Request) {
	response := struct {
		LoadedAt int64         `json:"loaded_at"`
		Results  []*UsageStats `json:"results"`
	}{
		LoadedAt: h.locator.LoadedAt().Unix(),
		Results:  h.locator.UsageStats(),
	}

	h.sendJSON(w, response)
}

func (h httpHandler) sendLookupError(w http.ResponseWriter, err error) {
	var parseErr *AddressParseError

	if errors.As(err, &parseErr) {
		h.sendError(w, err, "Incorrect IP address", http.StatusBadRequest)

		return
	}

	h.sendError(w, err, "Cannot resolve IP address", 0)
}

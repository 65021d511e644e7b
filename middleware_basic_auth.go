package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/iplocator/iplocator/config"
)

type basicAuthMiddleware struct {
	handler  http.Handler
	user     []byte
	password []byte
}

func (b *basicAuthMiddleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	user, pass, _ := req.BasicAuth()

	if subtle.ConstantTimeCompare(b.user, []byte(user))+subtle.ConstantTimeCompare(b.password, []byte(pass)) == 2 {
		b.handler.ServeHTTP(w, req)

		return
	}

	response := struct {
		Error struct {
			Message string `json:"message"`
			Context string `json:"context"`
		} `json:"error"`
	}{}
	response.Error.Message = "Authentication is required"

	w.Header().Set("WWW-Authenticate", `Basic realm="iplocator"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(&response) // nolint: errcheck
}

func withBasicAuth(handler http.Handler, auth config.Auth) http.Handler {
	if !auth.Enabled() {
		return handler
	}

	return &basicAuthMiddleware{
		handler:  handler,
		user:     []byte(auth.User),
		password: []byte(auth.Password),
	}
}

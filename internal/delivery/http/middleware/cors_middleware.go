package middleware

import (
	"net/http"
	"strings"
)

// The API surface only uses these methods and headers; see router.Setup.
var (
	corsMethods = strings.Join([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}, ", ")
	corsHeaders = "Content-Type, Authorization"
)

type CORSMiddleware struct {
	allowedOrigin string
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{allowedOrigin: "*"}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", corsMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsHeaders)

		// Preflight requests end here
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}

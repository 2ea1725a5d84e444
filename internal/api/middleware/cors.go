package middleware

import "net/http"

// CORS sets Access-Control-Allow-Origin: * on every response and answers
// OPTIONS preflights by reflecting the requested headers and methods.
// Preflights bypass authentication, so this wraps the whole router.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions {
			if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}
			// Browsers send the singular header; some non-browser
			// clients send the plural form
			methods := r.Header.Get("Access-Control-Request-Method")
			if methods == "" {
				methods = r.Header.Get("Access-Control-Request-Methods")
			}
			if methods != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

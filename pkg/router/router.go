package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a small method+path router with wildcard segments and request
// logging. Routes with a trailing "*" match any remaining path.
type Router struct {
	mux    *http.ServeMux
	routes map[string]HandlerFunc // key = METHOD:PATH
	paths  []string               // registration order, most specific first
}

func New() *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
	}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		if h, _ := r.match(req.Method, req.URL.Path); h != nil {
			h(lrw, req)
		} else if r.pathRegistered(req.URL.Path) {
			http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(lrw, "Not Found", http.StatusNotFound)
		}

		log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
			colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
			methodColor(req.Method), req.Method, colorReset,
			req.URL.Path,
			statusColor(lrw.statusCode), lrw.statusCode, colorReset,
			colorBlue, time.Since(start), colorReset,
		)
	})

	return r
}

// match finds the first registered route for the method whose pattern matches
// the request path. Patterns are tried in registration order, so callers
// register specific routes before generic ones.
func (r *Router) match(method, path string) (HandlerFunc, string) {
	for _, pattern := range r.paths {
		if matchPattern(path, pattern) {
			if h, ok := r.routes[method+":"+pattern]; ok {
				return h, pattern
			}
		}
	}
	return nil, ""
}

func (r *Router) pathRegistered(path string) bool {
	for _, pattern := range r.paths {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern checks a request path against a route pattern. A "*" segment
// matches exactly one path segment; a trailing "*" matches the whole rest.
func matchPattern(requestPath, pattern string) bool {
	reqSegs := strings.Split(strings.Trim(requestPath, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	if len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*" {
		if len(reqSegs) < len(patSegs)-1 {
			return false
		}
		for i := 0; i < len(patSegs)-1; i++ {
			if patSegs[i] != "*" && patSegs[i] != reqSegs[i] {
				return false
			}
		}
		return true
	}

	if len(reqSegs) != len(patSegs) {
		return false
	}
	for i, seg := range patSegs {
		if seg != "*" && seg != reqSegs[i] {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	key := method + ":" + path
	if _, exists := r.routes[key]; !exists {
		seen := false
		for _, p := range r.paths {
			if p == path {
				seen = true
				break
			}
		}
		if !seen {
			r.paths = append(r.paths, path)
		}
	}
	r.routes[key] = handler
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Routes exposes the route table for tests.
func (r *Router) Routes() map[string]HandlerFunc { return r.routes }

// --- Start server ---
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r.mux))
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}

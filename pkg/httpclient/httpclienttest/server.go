// Package httpclienttest provides an API double for exercising gateways
// through a real httpclient.Client.
package httpclienttest

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/shuldan/underc0de-admin/pkg/httpclient"
)

type route struct {
	status int
	body   string
	fn     HandlerFunc
}

// HandlerFunc computes a reply from the recorded request.
type HandlerFunc func(req Request) (status int, body string)

// Request is a call received by the Server.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
	Form   map[string]string
	Files  map[string][]byte
}

// JSON decodes the request body into a generic map.
func (r Request) JSON() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(r.Body, &out)
	return out
}

// Server answers every "METHOD /path" route with a fixed status and body,
// and records what it received. Unknown routes get 404.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]route
	requests []Request
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]route{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = route{status: status, body: body}
}

// HandleFunc routes "METHOD /path" to fn, for doubles that keep state.
func (s *Server) HandleFunc(method, path string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = route{fn: fn}
}

// Client returns a client for the server without retries.
func (s *Server) Client(t testing.TB, opts ...httpclient.Option) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(s.URL, append([]httpclient.Option{httpclient.WithMaxRetries(0)}, opts...)...)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	return c
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the latest request, or the zero Request when none arrived.
func (s *Server) Last() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  map[string]string{},
		Header: r.Header.Clone(),
	}
	for k := range r.URL.Query() {
		req.Query[k] = r.URL.Query().Get(k)
	}

	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); strings.HasPrefix(mediaType, "multipart/") {
		req.Form, req.Files = readMultipart(r)
	} else {
		req.Body, _ = io.ReadAll(r.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	rt, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if rt.fn != nil {
		rt.status, rt.body = rt.fn(req)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = io.WriteString(w, rt.body)
}

func readMultipart(r *http.Request) (map[string]string, map[string][]byte) {
	form, files := map[string]string{}, map[string][]byte{}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return form, files
	}
	for k, v := range r.MultipartForm.Value {
		form[k] = v[0]
	}
	for k, headers := range r.MultipartForm.File {
		f, err := headers[0].Open()
		if err != nil {
			continue
		}
		files[k], _ = io.ReadAll(f)
		_ = f.Close()
	}
	return form, files
}

// Envelope is a successful body following the API convention.
func Envelope(result string) string {
	return `{"success":true,"status":200,"msg":"OK","result":` + result + `}`
}

// Rejection is a body with success false and the given message.
func Rejection(code int, message string) string {
	msg, _ := json.Marshal(message)
	return `{"success":false,"status":` + strconv.Itoa(code) + `,"msg":` + string(msg) + `,"result":null}`
}

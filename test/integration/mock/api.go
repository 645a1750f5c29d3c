//go:build integration

package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// ApiMock is a scripted stand-in for the remote service. Responses are keyed
// by method and path; a "*" path segment matches any segment. Index -1 sets
// the default for every call, other indexes answer the nth call only.
type ApiMock struct {
	mu                    sync.Mutex
	server                *httptest.Server
	headersReceived       map[string][]map[string]string
	requestsReceived      map[string][]map[string]any
	responseMap           map[string]map[int]any
	defaultResponseMap    map[string]any
	responseStatus        map[string]map[int]int
	defaultResponseStatus map[string]int
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		headersReceived:       map[string][]map[string]string{},
		requestsReceived:      map[string][]map[string]any{},
		responseMap:           map[string]map[int]any{},
		defaultResponseMap:    map[string]any{},
		responseStatus:        map[string]map[int]int{},
		defaultResponseStatus: map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := r.Method + r.URL.Path
	index := len(a.requestsReceived[key])

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}
	a.requestsReceived[key] = append(a.requestsReceived[key], request)

	headers := map[string]string{}
	for name, value := range r.Header {
		headers[name] = value[0]
	}
	a.headersReceived[key] = append(a.headersReceived[key], headers)

	status, response := a.lookup(r.Method, r.URL.Path, index)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func (a *ApiMock) SetResponse(index int, method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaultResponseStatus[key] = status
		a.defaultResponseMap[key] = response
		return
	}
	if a.responseMap[key] == nil {
		a.responseMap[key] = map[int]any{}
		a.responseStatus[key] = map[int]int{}
	}
	a.responseMap[key][index] = response
	a.responseStatus[key][index] = status
}

// RequestCount reports how many calls matched method and path exactly.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requests := a.requestsReceived[method+path]; index < len(requests) {
		return requests[index]
	}
	return nil
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if headers := a.headersReceived[method+path]; index < len(headers) {
		return headers[index]
	}
	return nil
}

// Reset forgets every scripted response and recorded request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headersReceived = map[string][]map[string]string{}
	a.requestsReceived = map[string][]map[string]any{}
	a.responseMap = map[string]map[int]any{}
	a.defaultResponseMap = map[string]any{}
	a.responseStatus = map[string]map[int]int{}
	a.defaultResponseStatus = map[string]int{}
}

func (a *ApiMock) lookup(method, path string, index int) (int, any) {
	if key := a.findMatchingKey(mapKeys(a.responseMap), method, path); key != "" {
		if response, ok := a.responseMap[key][index]; ok {
			return a.responseStatus[key][index], response
		}
	}
	if key := a.findMatchingKey(mapKeys(a.defaultResponseMap), method, path); key != "" {
		return a.defaultResponseStatus[key], a.defaultResponseMap[key]
	}
	return http.StatusNotFound, map[string]any{"error": "no response scripted for " + method + " " + path}
}

func (a *ApiMock) findMatchingKey(keys []string, method, path string) string {
	exactKey := method + path
	for _, key := range keys {
		if key == exactKey {
			return key
		}
	}
	for _, key := range keys {
		if strings.HasPrefix(key, method+"/") && matchPath(strings.TrimPrefix(key, method), path) {
			return key
		}
	}
	return ""
}

func matchPath(pattern string, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

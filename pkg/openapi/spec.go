package openapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
)

// Spec is a minimal OpenAPI 3.0 document builder. It covers the subset
// of the specification the service actually exposes.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Servers    []Server             `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

func NewSpec(config Config) *Spec {
	return &Spec{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       config.Title,
			Version:     config.Version,
			Description: config.Description,
		},
		Paths: make(map[string]*PathItem),
	}
}

func (s *Spec) AddServer(url, description string) {
	s.Servers = append(s.Servers, Server{URL: url, Description: description})
}

func (s *Spec) Path(pattern string) *PathItem {
	item, ok := s.Paths[pattern]
	if !ok {
		item = &PathItem{}
		s.Paths[pattern] = item
	}

	return item
}

func (s *Spec) SetComponents(components *Components) {
	s.Components = components
}

// Handler serves the spec document as JSON.
func (s *Spec) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(s)
		if err != nil {
			http.Error(w, "failed to render spec", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// PathPatterns returns the registered path patterns in sorted order.
func (s *Spec) PathPatterns() []string {
	patterns := make([]string, 0, len(s.Paths))
	for pattern := range s.Paths {
		patterns = append(patterns, pattern)
	}

	sort.Strings(patterns)
	return patterns
}

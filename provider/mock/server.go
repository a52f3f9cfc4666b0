package mock

import "net/http/httptest"

// HTTPTestServer runs Service on an httptest server
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
	URL    string
}

// NewHTTPTestServer starts mock identity provider
func NewHTTPTestServer(opts ...Option) *HTTPTestServer {
	service := NewService(opts...)
	server := &HTTPTestServer{Service: service}
	server.Server = httptest.NewServer(service.Handler())
	server.URL = server.Server.URL
	service.Issuer = server.URL
	return server
}

// Close stops the server
func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}

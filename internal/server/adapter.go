package server

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gorilla/mux"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/routes"
)

// Identity is injected as authorizer context for every local request.
type Identity struct {
	Username string
	Email    string
	Scopes   []data.Scope
}

// ToEvent translates an HTTP request into the event the API Gateway would deliver.
func ToEvent(r *http.Request, identity Identity) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ",")
	}
	query := make(map[string]string, len(r.URL.Query()))
	for name, values := range r.URL.Query() {
		query[name] = strings.Join(values, ",")
	}
	scopes := make([]interface{}, len(identity.Scopes))
	for i, scope := range identity.Scopes {
		scopes[i] = string(scope)
	}
	event := events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              "$default",
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
	}
	event.RequestContext.HTTP.Method = r.Method
	event.RequestContext.HTTP.Path = r.URL.Path
	event.RequestContext.HTTP.SourceIP = r.RemoteAddr
	event.RequestContext.HTTP.UserAgent = r.UserAgent()
	event.RequestContext.TimeEpoch = time.Now().UnixMilli()
	event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
		Lambda: map[string]interface{}{
			"claims": map[string]interface{}{
				"username": identity.Username,
				"email":    identity.Email,
			},
			"scopes": scopes,
		},
	}
	return event, nil
}

func WriteResponse(w http.ResponseWriter, response events.APIGatewayV2HTTPResponse) {
	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)
	if response.Body != "" {
		io.WriteString(w, response.Body)
	}
}

func NewHandler(router *routes.Router, identity Identity, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		event, err := ToEvent(req, identity)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		response := router.Invoke(event, req.Context())
		WriteResponse(w, response)
		logger.Info("request", "method", req.Method, "path", req.URL.Path, "status", response.StatusCode, "duration", time.Since(start))
	})
	return r
}

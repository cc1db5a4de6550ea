package routes

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/routes/filters"
)

type ContextKey string

const (
	PARAMS_KEY   ContextKey = "Params"
	USERNAME_KEY ContextKey = "Username"
	EMAIL_KEY    ContextKey = "Email"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	if event.RawPath == cr.Path {
		return params, true
	}
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

// Literal segments outrank parameters, so /providers/omdb/random wins over
// /providers/omdb/:imdbId no matter the map iteration order.
func _specificity(path string) int {
	score := 0
	for _, segment := range strings.Split(path, "/") {
		if segment != "" && !strings.HasPrefix(segment, ":") {
			score++
		}
	}
	return score
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  *slog.Logger
}

func NewRouterWithLogger(logger *slog.Logger, services ...Service) *Router {
	var routes []CachedRoute
	var fltrs []filters.RequestFilter
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			cachedRoute := CachedRoute{
				Method: parts[0],
				Path:   parts[1],
				Route:  route,
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			}
			routes = append(routes, cachedRoute)
		}
	}
	_sortRoutes(routes)
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	fltrs = append(fltrs, filters.DefaultAuthorizationFilter())
	return &Router{
		Routes:  routes,
		Filters: fltrs,
		Logger:  logger,
	}
}

func NewRouter(services ...Service) *Router {
	return NewRouterWithLogger(slog.Default(), services...)
}

func _sortRoutes(routes []CachedRoute) {
	for i := 1; i < len(routes); i++ {
		for j := i; j > 0 && _specificity(routes[j].Path) > _specificity(routes[j-1].Path); j-- {
			routes[j], routes[j-1] = routes[j-1], routes[j]
		}
	}
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := exceptions.StatusCode(err)
	body, merr := json.Marshal(map[string]string{"message": err.Error()})
	if merr != nil {
		body = []byte(`{"message": "Unexpected internal error"}`)
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	method := event.RequestContext.HTTP.Method
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			r.Logger.Debug("request stopped by filter", "method", method, "path", event.RawPath, "status", updatedContext.Response.StatusCode)
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			r.Logger.Debug("routing request", "method", method, "path", event.RawPath, "route", route.Path)
			resp, err := route.Route(event, context.WithValue(*filterContext.Context, PARAMS_KEY, params))
			if err != nil {
				response := translateError(err)
				if response.StatusCode >= 500 {
					r.Logger.Error("request failed", "method", method, "path", event.RawPath, "status", response.StatusCode, "error", err)
				} else {
					r.Logger.Debug("request rejected", "method", method, "path", event.RawPath, "status", response.StatusCode, "error", err)
				}
				return response
			}
			return resp
		}
	}
	return translateError(exceptions.NotFound("route", event.RawPath))
}

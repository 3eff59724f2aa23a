package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"edusp-proxy/internal/activity"
)

// HandleAPIGateway serves an API Gateway proxy event with the same semantics
// as the HTTP routes. Errors are always reported in the response, never returned.
func (g *Gateway) HandleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	reqID := ev.RequestContext.RequestID
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx = withRequestID(ctx, reqID)

	headers := corsHeaders(g.allowedOrigin)
	headers[requestIDHeader] = reqID

	var (
		kind   string
		status int
		body   []byte
	)

	switch methodStatus(ev.HTTPMethod) {
	case http.StatusNoContent:
		status = http.StatusNoContent
	case http.StatusMethodNotAllowed:
		headers["Allow"] = "GET, HEAD, OPTIONS"
		status, body = jsonBody(http.StatusMethodNotAllowed, activity.ErrorBody{Message: msgMethodNotAllowed})
	default:
		if g.limiter != nil && !g.limiter.Allow() {
			status, body = jsonBody(http.StatusTooManyRequests, activity.ErrorBody{Message: msgTooManyRequests})
			break
		}
		res := g.Resolve(ctx, queryFromEvent(ev))
		kind = res.Intent.Kind.String()
		status, body = jsonBody(res.Status, res.Body)
	}

	if body != nil {
		headers["Content-Type"] = "application/json; charset=utf-8"
	}
	if ev.HTTPMethod == http.MethodHead {
		body = nil
	}

	g.logLine(kind, ev.HTTPMethod, ev.Path, reqID, status, len(body), time.Since(start))

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// queryFromEvent prefers single-value parameters and falls back to the first
// multi-value entry.
func queryFromEvent(ev events.APIGatewayProxyRequest) activity.Query {
	get := func(key string) string {
		if v, ok := ev.QueryStringParameters[key]; ok {
			return v
		}
		if vs := ev.MultiValueQueryStringParameters[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return activity.Query{ID: get("id"), Status: get("status")}
}

func jsonBody(status int, v any) (int, []byte) {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(activity.ErrorBody{Message: activity.UpstreamFailure})
		return http.StatusInternalServerError, b
	}
	return status, b
}

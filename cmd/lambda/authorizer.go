package main

import (
	"net/http"
	"strings"

	"symptomcheck/interfaces/http/rest/middleware"

	"github.com/aws/aws-lambda-go/events"
)

// trustedHeaders are only ever set from the authorizer context
var trustedHeaders = []string{
	middleware.HeaderGatewayAuthorized,
	middleware.HeaderUserID,
	middleware.HeaderUserEmail,
	middleware.HeaderUserRole,
}

// applyAuthorizerContext copies the API Gateway JWT authorizer claims into
// the headers the Lambda auth middleware trusts. Client-supplied copies of
// those headers are always removed. It reports whether a subject was found.
func applyAuthorizerContext(req *events.APIGatewayV2HTTPRequest) bool {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	for key := range req.Headers {
		for _, trusted := range trustedHeaders {
			if strings.EqualFold(key, trusted) {
				delete(req.Headers, key)
			}
		}
	}

	authz := req.RequestContext.Authorizer
	if authz == nil || authz.JWT == nil {
		return false
	}
	claims := authz.JWT.Claims
	sub := claims["sub"]
	if sub == "" {
		return false
	}

	req.Headers[http.CanonicalHeaderKey(middleware.HeaderGatewayAuthorized)] = "true"
	req.Headers[http.CanonicalHeaderKey(middleware.HeaderUserID)] = sub
	if email := claims["email"]; email != "" {
		req.Headers[http.CanonicalHeaderKey(middleware.HeaderUserEmail)] = email
	}
	if role := claims["role"]; role != "" {
		req.Headers[http.CanonicalHeaderKey(middleware.HeaderUserRole)] = role
	}
	return true
}

// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ice-blockchain/mixpanel/log"
)

// HTTPRequest uses the remote address of the connection as the peer ip.
func HTTPRequest(r *http.Request) RequestContext {
	if r == nil {
		return nil
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return &requestSnapshot{peerIP: net.ParseIP(host), userAgent: r.Header.Get("User-Agent")}
}

// GinRequest uses gin's client ip, which honors the router's trusted proxies and remote ip headers.
func GinRequest(ginCtx *gin.Context) RequestContext {
	if ginCtx == nil || ginCtx.Request == nil {
		return nil
	}

	return &requestSnapshot{peerIP: net.ParseIP(ginCtx.ClientIP()), userAgent: ginCtx.GetHeader("User-Agent")}
}

func (r *requestSnapshot) PeerIP() net.IP {
	return r.peerIP
}

func (r *requestSnapshot) UserAgent() string {
	return r.userAgent
}

// Middleware binds a request scoped client to every gin request, retrievable with FromGin.
// Its logger is tagged with the request's method, route and client ip.
func Middleware(app *Application, opts ...RequestOption) gin.HandlerFunc {
	if app == nil {
		app = new(Application)
	}

	return func(ginCtx *gin.Context) {
		logger := log.With("method", ginCtx.Request.Method, "route", ginCtx.FullPath(), "clientIp", ginCtx.ClientIP())
		ginCtx.Set(ginContextKey, app.ForRequest(GinRequest(ginCtx), append([]RequestOption{WithLogger(logger)}, opts...)...))
		ginCtx.Next()
	}
}

// FromGin returns the client bound by Middleware.
// Without it, the returned client only logs that analytics/mixpanel is not configured.
func FromGin(ginCtx *gin.Context) Client {
	if val, found := ginCtx.Get(ginContextKey); found {
		if cl, ok := val.(Client); ok {
			return cl
		}
	}

	return new(Application).ForRequest(GinRequest(ginCtx))
}

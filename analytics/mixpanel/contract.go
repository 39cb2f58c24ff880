// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"context"
	"net"
	"sync/atomic"
	stdlibtime "time"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"github.com/ua-parser/uap-go/uaparser"
)

// Public API.

const (
	PropertyTime       = "time"
	PropertyInsertID   = "$insert_id"
	PropertyDistinctID = "distinct_id"
	PropertyIP         = "ip"
	PropertyBrowser    = "$browser"
	PropertyDevice     = "$device"
	PropertyOS         = "$os"
)

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

var (
	ErrNotConfigured    = errors.New("mixpanel not configured")
	ErrRemoteRejection  = errors.New("mixpanel rejected the request")
	ErrWriteOnly        = errors.New("mixpanel events can't be decoded")
	ErrEmptyEventName   = errors.New("event name is empty")
	ErrUnsupportedValue = errors.New("unsupported property value")
)

type (
	// Client sends events to Mixpanel. Failures are logged, never returned: analytics must not fail the caller.
	Client interface {
		// Track sends all events in a single call, enriched from the bound request, if any.
		Track(ctx context.Context, events ...*Event)
		// TrackRequest is Track, enriched from the provided request instead of the bound one.
		TrackRequest(ctx context.Context, request RequestContext, events ...*Event)
		// Time sends exactly one event, with default properties only. It never applies request enrichment.
		Time(ctx context.Context, event *Event)
	}
	// RequestContext is the read-only view of an inbound request needed for enrichment.
	RequestContext interface {
		// PeerIP is nil if unknown.
		PeerIP() net.IP
		// UserAgent is the first User-Agent header value, or empty.
		UserAgent() string
	}
	UserAgentParser interface {
		Parse(userAgent string) *Agent
	}
	// Agent holds what could be derived from a User-Agent header. Empty fields are unknown.
	Agent struct {
		Browser      string
		OS           string
		DeviceVendor string
	}
	Logger interface {
		Error(err error, fields ...any)
		Warn(msg string, fields ...any)
	}
	Event struct {
		Properties Properties
		Name       string
	}
	Properties map[string]Value
	// Value is a JSON value: null, string, number, bool, array or object.
	Value struct {
		object  Properties
		str     string
		array   []Value
		float   float64
		integer int64
		kind    Kind
		isInt   bool
		boolean bool
	}
	Kind uint8
	// Configuration is what's needed to authenticate against the import API of a project.
	Configuration struct {
		ProjectID   string      `yaml:"projectId" mapstructure:"projectId"`
		Credentials Credentials `yaml:"credentials" mapstructure:"credentials"`
	}
	// Credentials of the service account used for basic authentication.
	Credentials struct {
		Username string `yaml:"username" mapstructure:"username"`
		Password string `yaml:"password" mapstructure:"password"`
	}
	// Application holds the Mixpanel configuration of one application instance.
	// It starts unconfigured, unless New found a project id, and Configure can be called at any time.
	// The zero value is usable: it logs with the global logger and posts with a shared http client.
	Application struct {
		configuration atomic.Pointer[Configuration]
		parser        atomic.Pointer[UserAgentParser]
		logger        Logger
		httpClient    *req.Client
		baseURL       string
	}
	RequestOption func(*scope)
)

// Private API.

const (
	defaultBaseURL  = "https://api.mixpanel.com"
	importPath      = "/import"
	requestDeadline = 25 * stdlibtime.Second
	unknownFamily   = "Other"
	ginContextKey   = "wintr/analytics/mixpanel"
)

type (
	scope struct {
		app        *Application
		request    RequestContext
		logger     Logger
		httpClient *req.Client
	}
	dispatcher struct {
		cfg        *Configuration
		httpClient *req.Client
		baseURL    string
	}
	eventPayload struct {
		Event      string     `json:"event"`
		Properties Properties `json:"properties"`
	}
	// requestSnapshot is copied out of the inbound request, so it stays valid after the handler returns.
	requestSnapshot struct {
		userAgent string
		peerIP    net.IP
	}
	uapParser struct {
		parser *uaparser.Parser
	}
	config struct {
		Mixpanel struct {
			Credentials    Credentials         `yaml:"credentials" mapstructure:"credentials"`
			ProjectID      string              `yaml:"projectId" mapstructure:"projectId"`
			BaseURL        string              `yaml:"baseUrl" mapstructure:"baseUrl"`
			RequestTimeout stdlibtime.Duration `yaml:"requestTimeout" mapstructure:"requestTimeout"`
		} `yaml:"wintr/analytics/mixpanel" mapstructure:"wintr/analytics/mixpanel"` //nolint:tagliatelle // Nope.
	}
)

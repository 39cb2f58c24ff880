// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"context"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/mixpanel/config"
	"github.com/ice-blockchain/mixpanel/log"
	"github.com/ice-blockchain/mixpanel/terror"
)

// New loads the `wintr/analytics/mixpanel` section under applicationYAMLKey.
// Missing project id or credentials are looked up in `<APPLICATION_YAML_KEY>_ANALYTICS_MIXPANEL_*` and then
// `ANALYTICS_MIXPANEL_*` environment variables. Without a project id, the application stays unconfigured.
func New(applicationYAMLKey string) *Application {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	if cfg.Mixpanel.ProjectID == "" {
		cfg.Mixpanel.ProjectID = appcfg.Env(applicationYAMLKey, "ANALYTICS_MIXPANEL_PROJECT_ID")
	}
	if cfg.Mixpanel.Credentials.Username == "" {
		cfg.Mixpanel.Credentials.Username = appcfg.Env(applicationYAMLKey, "ANALYTICS_MIXPANEL_USERNAME")
	}
	if cfg.Mixpanel.Credentials.Password == "" {
		cfg.Mixpanel.Credentials.Password = appcfg.Env(applicationYAMLKey, "ANALYTICS_MIXPANEL_PASSWORD")
	}
	app := newApplication(cfg.Mixpanel.BaseURL, newHTTPClient(cfg.Mixpanel.RequestTimeout), log.Default())
	if cfg.Mixpanel.ProjectID == "" {
		log.Warn("analytics/mixpanel has no project id, events won't be sent until it's configured", "applicationYAMLKey", applicationYAMLKey)

		return app
	}
	app.Configure(&Configuration{ProjectID: cfg.Mixpanel.ProjectID, Credentials: cfg.Mixpanel.Credentials})

	return app
}

func newApplication(baseURL string, httpClient *req.Client, logger Logger) *Application {
	if baseURL = strings.TrimSuffix(baseURL, "/"); baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Application{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// Configure replaces the current configuration. It's safe to call while events are being sent.
func (a *Application) Configure(cfg *Configuration) {
	if cfg == nil {
		a.scope().logger.Warn("analytics/mixpanel configuration ignored, it's nil")

		return
	}
	cp := *cfg
	a.configuration.Store(&cp)
}

// Configuration is nil if the application is not configured yet.
func (a *Application) Configuration() *Configuration {
	cfg := a.configuration.Load()
	if cfg == nil {
		return nil
	}
	cp := *cfg

	return &cp
}

// SetUserAgentParser replaces the parser used for request enrichment. A nil parser restores the default one.
func (a *Application) SetUserAgentParser(parser UserAgentParser) {
	if parser == nil {
		a.parser.Store(nil)

		return
	}
	a.parser.Store(&parser)
}

func (a *Application) userAgentParser() UserAgentParser {
	if parser := a.parser.Load(); parser != nil {
		return *parser
	}

	return NewUserAgentParser()
}

func (a *Application) Track(ctx context.Context, events ...*Event) {
	a.scope().Track(ctx, events...)
}

func (a *Application) TrackRequest(ctx context.Context, request RequestContext, events ...*Event) {
	a.scope().TrackRequest(ctx, request, events...)
}

func (a *Application) Time(ctx context.Context, event *Event) {
	a.scope().Time(ctx, event)
}

// ForRequest binds request to the returned client, so that Track enriches events with it.
func (a *Application) ForRequest(request RequestContext, opts ...RequestOption) Client {
	s := a.scope()
	s.request = request
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithLogger makes the request scoped client log with the request's own logger.
func WithLogger(logger Logger) RequestOption {
	return func(s *scope) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHTTPClient makes the request scoped client post with the request's own http client.
func WithHTTPClient(httpClient *req.Client) RequestOption {
	return func(s *scope) {
		if httpClient != nil {
			s.httpClient = httpClient
		}
	}
}

func (a *Application) scope() *scope {
	logger, httpClient := a.logger, a.httpClient
	if logger == nil {
		logger = log.Default()
	}
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}

	return &scope{app: a, logger: logger, httpClient: httpClient}
}

func (s *scope) Track(ctx context.Context, events ...*Event) {
	s.TrackRequest(ctx, s.request, events...)
}

func (s *scope) TrackRequest(ctx context.Context, request RequestContext, events ...*Event) {
	d := s.dispatcher()
	if d == nil {
		return
	}
	var derived Properties
	if request != nil {
		derived = derivedProperties(request, s.app.userAgentParser())
	}
	s.report(d.send(ctx, s.prepare(derived, events)))
}

func (s *scope) Time(ctx context.Context, event *Event) {
	d := s.dispatcher()
	if d == nil {
		return
	}
	s.report(d.send(ctx, s.prepare(nil, []*Event{event})))
}

func (s *scope) dispatcher() *dispatcher {
	cfg := s.app.configuration.Load()
	if cfg == nil {
		s.logger.Error(errors.Wrap(ErrNotConfigured, "use Application.Configure or the `wintr/analytics/mixpanel` config section"))

		return nil
	}

	baseURL := s.app.baseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &dispatcher{cfg: cfg, httpClient: s.httpClient, baseURL: baseURL}
}

func (s *scope) prepare(derived Properties, events []*Event) []*Event {
	prepared := make([]*Event, 0, len(events))
	for _, event := range events {
		if event == nil {
			continue
		}
		if event.Name == "" {
			s.logger.Error(errors.Wrap(ErrEmptyEventName, "event dropped"), "properties", event.Properties.Interface())

			continue
		}
		props, err := prepareProperties(derived, event.Properties)
		if err != nil {
			s.logger.Error(errors.Wrapf(err, "event `%v` dropped", event.Name))

			continue
		}
		prepared = append(prepared, NewEvent(event.Name, props))
	}

	return prepared
}

func (s *scope) report(err error) {
	if err == nil {
		return
	}
	s.logger.Error(errors.Wrap(err, "failed to post events to mixpanel"), terror.Fields(err)...)
}

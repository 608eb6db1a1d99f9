// Package client implements the HTTP client for remote vision inference
// servers. One Client speaks either of two incompatible server protocol
// generations ("legacy" and "new") behind a uniform call surface: per call it
// picks the protocol, builds the matching request shape, and normalizes the
// heterogeneous responses (binary image vs. JSON, embedded base64
// visualization vs. raw JPEG bytes) into one result shape.
package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visor/internal/media"
	"visor/internal/pkg/logger"
)

// Mode is the wire protocol generation the client speaks.
type Mode string

const (
	ModeLegacy Mode = "legacy"
	ModeNew    Mode = "new"
)

// Category is the kind of vision task a model performs. It selects the
// new-mode inference endpoint.
type Category string

const (
	ObjectDetection      Category = "object-detection"
	Classification       Category = "classification"
	InstanceSegmentation Category = "instance-segmentation"
)

// Client holds the session state of one inference server connection: address,
// credential, active protocol mode and the default model. The chained
// configuration methods mutate the receiver in place and return it; a Client
// is therefore not safe for concurrent reconfiguration without external
// locking.
type Client struct {
	serverURL string
	apiKey    string
	mode      Mode
	cfg       InferenceConfig
	modelID   string
	category  Category
	http      *http.Client
	log       *logger.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. This is where callers
// inject timeouts or transport policy; the client itself applies none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger attaches a logger; without it the client stays silent.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log.Named("client")
	}
}

// New creates a client for the server at serverURL. The client starts in
// new-mode with object detection as the default category and no default
// model selected.
func New(serverURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		mode:      ModeNew,
		cfg:       DefaultConfig(),
		category:  ObjectDetection,
		http:      http.DefaultClient,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure replaces the active inference call parameters.
func (c *Client) Configure(cfg InferenceConfig) *Client {
	c.cfg = cfg
	return c
}

// UseLegacyProtocol switches to the legacy protocol starting with the next
// inference call.
func (c *Client) UseLegacyProtocol() *Client {
	c.mode = ModeLegacy
	return c
}

// UseNewProtocol switches to the new protocol starting with the next
// inference call.
func (c *Client) UseNewProtocol() *Client {
	c.mode = ModeNew
	return c
}

// SelectModel sets the default model used by calls that do not carry their
// own override.
func (c *Client) SelectModel(modelID string, category Category) *Client {
	c.modelID = modelID
	c.category = category
	return c
}

// InferOptions are per-call overrides; zero values fall back to the session
// defaults.
type InferOptions struct {
	ModelID  string
	Category Category
}

// Infer runs inference for the given inputs through the active protocol. It
// issues one sequential request per input; the returned Prediction holds the
// bare result for a single input and the ordered batch otherwise.
func (c *Client) Infer(ctx context.Context, inputs []media.Input, opts *InferOptions) (Prediction, error) {
	if opts == nil {
		opts = &InferOptions{}
	}
	switch c.mode {
	case ModeLegacy:
		return c.inferLegacy(ctx, inputs, opts)
	default:
		return c.inferNew(ctx, inputs, opts)
	}
}

// resolveModelID applies the call override, then the session default. An
// inference call without any resolvable identifier fails here, before I/O.
func (c *Client) resolveModelID(opts *InferOptions) (string, error) {
	if opts.ModelID != "" {
		return opts.ModelID, nil
	}
	if c.modelID != "" {
		return c.modelID, nil
	}
	return "", &InvalidModelIDError{Reason: "no model selected for this call and no session default set"}
}

// resolveCategory applies the call override, then the session default.
func (c *Client) resolveCategory(opts *InferOptions) Category {
	if opts.Category != "" {
		return opts.Category
	}
	return c.category
}

// callID tags one outbound request in logs.
func callID() string {
	return uuid.NewString()
}

func (c *Client) logCall(id, protocol, endpoint string) {
	c.log.Debug("inference request",
		zap.String("request_id", id),
		zap.String("protocol", protocol),
		zap.String("endpoint", endpoint),
	)
}

package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/metrics"
)

// ErrUnhandled is returned when no route matches an interaction
var ErrUnhandled = errors.New("unhandled interaction")

// HandlerFunc answers one routed interaction
type HandlerFunc func(ctx context.Context, in *Interaction, r Responder) error

type componentRoute struct {
	customID string
	prefix   bool
	handler  HandlerFunc
}

// Router dispatches commands by name and components by kind and custom id.
// Exact component ids win over prefixes; longer prefixes win over shorter ones.
type Router struct {
	commands   map[string]HandlerFunc
	components map[Kind][]componentRoute
}

func NewRouter() *Router {
	return &Router{
		commands:   map[string]HandlerFunc{},
		components: map[Kind][]componentRoute{},
	}
}

func (r *Router) Command(name string, h HandlerFunc) {
	r.commands[name] = h
}

// Component routes an exact custom id.
func (r *Router) Component(kind Kind, customID string, h HandlerFunc) {
	r.components[kind] = append(r.components[kind], componentRoute{customID: customID, handler: h})
}

// ComponentPrefix routes every custom id starting with prefix, e.g. "offering/".
func (r *Router) ComponentPrefix(kind Kind, prefix string, h HandlerFunc) {
	r.components[kind] = append(r.components[kind], componentRoute{customID: prefix, prefix: true, handler: h})
}

// Match resolves the route label and handler for an interaction.
func (r *Router) Match(in *Interaction) (string, HandlerFunc, bool) {
	if in.Kind == KindCommand {
		h, ok := r.commands[in.Name]
		return "/" + in.Name, h, ok
	}

	var (
		best    componentRoute
		matched bool
	)
	for _, route := range r.components[in.Kind] {
		if !route.prefix {
			if route.customID == in.Name {
				return route.customID, route.handler, true
			}
			continue
		}
		if strings.HasPrefix(in.Name, route.customID) && (!matched || len(route.customID) > len(best.customID)) {
			best, matched = route, true
		}
	}
	if !matched {
		return "", nil, false
	}
	return best.customID, best.handler, true
}

// Dispatch runs the matching handler and records the outcome.
func (r *Router) Dispatch(ctx context.Context, in *Interaction, resp Responder) error {
	ctx = context.WithValue(ctx, logger.InteractionIDKey, in.ID)

	route, handler, ok := r.Match(in)
	if !ok {
		metrics.Interactions.WithLabelValues("unmatched", "ignored").Inc()
		logger.Debug(ctx, "No route for interaction",
			zap.String("kind", in.Kind.String()),
			zap.String("name", in.Name),
		)
		return ErrUnhandled
	}

	start := time.Now()
	err := handler(ctx, in, resp)
	result := "ok"
	if err != nil {
		result = "error"
		logger.Error(ctx, "Interaction failed",
			zap.String("route", route),
			zap.String("user", in.UserID),
			zap.Error(err),
		)
	}
	metrics.Interactions.WithLabelValues(route, result).Inc()
	logger.Debug(ctx, "Interaction handled",
		zap.String("route", route),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

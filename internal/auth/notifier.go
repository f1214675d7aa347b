package auth

import (
	"github.com/charmbracelet/log"
	"github.com/lofting/spotauth/internal/shared"
	"golang.org/x/oauth2"
)

// Result is the terminal outcome of a login flow, delivered to the host
// application. Kind is either "token" or "error".
type Result struct {
	Kind    string        `json:"kind"`
	Token   *oauth2.Token `json:"token,omitempty"`
	Message string        `json:"message,omitempty"`
}

// TokenResult wraps a successfully obtained token.
func TokenResult(t *oauth2.Token) Result {
	return Result{Kind: "token", Token: t}
}

// ErrorResult wraps a terminal flow failure.
func ErrorResult(err error) Result {
	return Result{Kind: "error", Message: err.Error()}
}

// Notifier receives flow outcomes. Delivery is one-shot per flow and
// best-effort; implementations must not block the callback handler.
type Notifier interface {
	Notify(Result)
}

// ChannelNotifier delivers results over a buffered channel without blocking.
// A result is dropped, and the drop logged, when the host is not draining the
// channel.
type ChannelNotifier struct {
	ch     chan Result
	logger *log.Logger
}

func NewChannelNotifier(buffer int, logger *log.Logger) *ChannelNotifier {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ChannelNotifier{ch: make(chan Result, buffer), logger: logger}
}

// Notify implements [Notifier].
func (n *ChannelNotifier) Notify(r Result) {
	select {
	case n.ch <- r:
	default:
		n.logger.Warn("dropping auth result, host is not listening", "kind", r.Kind)
	}
}

// Results returns the channel outcomes are delivered on.
func (n *ChannelNotifier) Results() <-chan Result {
	return n.ch
}

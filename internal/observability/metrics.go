package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Message outcomes.
const (
	OutcomeIgnored  = "ignored"
	OutcomeCooldown = "cooldown"
	OutcomeAccepted = "accepted"
)

// Reply kinds.
const (
	ReplyEcho    = "echo"
	ReplyBabble  = "babble"
	ReplyCommand = "command"
	ReplyFailure = "failure"
)

// Metrics groups all Prometheus instruments used by the bot.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Messages *prometheus.CounterVec
	Commands *prometheus.CounterVec
	Replies  *prometheus.CounterVec
	Saves    *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Incoming messages by outcome.",
		}, []string{"outcome"}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Command runs by command and result.",
		}, []string{"command", "result"}),
		Replies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Replies sent by kind.",
		}, []string{"kind"}),
		Saves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_saves_total",
			Help:      "History file writes by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) Message(outcome string) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Command(name string, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(name, result(err)).Inc()
}

func (m *Metrics) Reply(kind string) {
	if m == nil {
		return
	}
	m.Replies.WithLabelValues(kind).Inc()
}

func (m *Metrics) Save(err error) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(result(err)).Inc()
}

// TrackGauge exposes fn as a gauge sampled at scrape time.
func (m *Metrics) TrackGauge(namespace, name, help string, fn func() float64) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

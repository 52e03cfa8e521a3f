package metrics

import (
	"database/sql"
	"strings"

	"github.com/dlmiddlecote/sqlstats"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/child-wallet/internal/config"
)

// Service owns the prometheus registry of the server and the wallet counters.
type Service struct {
	Registry  *prometheus.Registry
	Namespace string

	keyResolutions *prometheus.CounterVec
	signatures     *prometheus.CounterVec
	transfers      *prometheus.CounterVec
}

// New registers the runtime, wallet and (when db is set) database collectors.
func New(db *sql.DB) (*Service, error) {
	namespace := strings.ReplaceAll(config.ModuleName, "-", "_")
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry:  registry,
		Namespace: namespace,
		keyResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_resolutions_total",
			Help:      "Public key resolutions by the layer that answered them.",
		}, []string{"source"}),
		signatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signatures_total",
			Help:      "Signatures produced by kind and result.",
		}, []string{"kind", "result"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Token transfers by result.",
		}, []string{"result"}),
	}

	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		s.keyResolutions,
		s.signatures,
		s.transfers,
	}

	if db != nil {
		toRegister = append(toRegister, sqlstats.NewStatsCollector(namespace, db))
	}

	for _, c := range toRegister {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register metrics collector")
		}
	}

	return s, nil
}

func (s *Service) ObserveKeyResolution(source string) {
	s.keyResolutions.WithLabelValues(source).Inc()
}

func (s *Service) ObserveSignature(kind string, result string) {
	s.signatures.WithLabelValues(kind, result).Inc()
}

func (s *Service) ObserveTransfer(result string) {
	s.transfers.WithLabelValues(result).Inc()
}

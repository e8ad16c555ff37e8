package manager

import "github.com/prometheus/client_golang/prometheus"

var loadedModelsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "loaded_translation_models_total",
	Help: "Total number of translation models currently loaded in memory",
})

func init() {
	prometheus.MustRegister(loadedModelsGauge)
}

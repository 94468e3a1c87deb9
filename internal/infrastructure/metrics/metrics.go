// Package metrics expone contadores Prometheus del motor de inventario y el
// servidor HTTP que los publica (separado del API para no mezclar superficies).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsApplied movimientos aplicados con éxito, por tipo (load/unload).
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_movements_applied_total",
		Help: "Movimientos de stock aplicados, por tipo.",
	}, []string{"type"})

	// MovementsRejected movimientos rechazados, por motivo
	// (validation, not_found, insufficient_stock, internal).
	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_movements_rejected_total",
		Help: "Movimientos de stock rechazados, por motivo.",
	}, []string{"reason"})
)

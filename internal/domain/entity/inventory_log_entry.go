package entity

import "time"

// InventoryLogEntry entrada append-only del log de inventario. Nunca se
// modifica ni se borra; la cantidad actual de un código bajo la estrategia
// de log es la suma de Delta de todas sus entradas.
type InventoryLogEntry struct {
	ID        string
	Barcode   string
	Delta     int64     // con signo: negativo representa consumo
	Timestamp time.Time // asignado por el servidor al insertar
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Política de propagación: la capa de aplicación los maneja localmente y los
// convierte en resultado nulo (lookup) o en no-op (inventario); nunca se
// propagan como panic al caller.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrStoreUnavailable   = errors.New("almacén remoto no disponible")
	ErrStoreIO            = errors.New("error de lectura/escritura en el almacén")
	ErrNetworkUnavailable = errors.New("sin conexión de red")
	ErrAPINotFound        = errors.New("producto no encontrado en la API externa")
	ErrAPINoData          = errors.New("la API externa no tiene datos del producto")
	ErrAPIRequestFailed   = errors.New("fallo en la petición a la API externa")
	ErrCacheWriteFailed   = errors.New("fallo al escribir la caché de metadatos")
)

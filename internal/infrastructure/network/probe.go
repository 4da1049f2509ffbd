package network

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/jhoicas/despensa-api/internal/application/ports"
)

var _ ports.ReachabilityChecker = (*DialProbe)(nil)

// DialProbe comprueba conectividad abriendo una conexión TCP corta contra el
// host de la API externa. No es una garantía de que la API responda, solo la
// señal booleana "online" que consume el caso de uso de lookup.
type DialProbe struct {
	addr    string
	timeout time.Duration
}

// NewDialProbe construye la sonda desde la URL base de la API (se usa el host
// y el puerto implícito del esquema).
func NewDialProbe(rawURL string, timeout time.Duration) (*DialProbe, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	port := u.Port()
	if port == "" {
		if u.Scheme == "http" {
			port = "80"
		} else {
			port = "443"
		}
	}
	return &DialProbe{
		addr:    net.JoinHostPort(u.Hostname(), port),
		timeout: timeout,
	}, nil
}

// Online devuelve true si se pudo abrir la conexión dentro del timeout.
func (p *DialProbe) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

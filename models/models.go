package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles known to the platform.
type Role string

const (
	RoleCliente        Role = "CLIENTE"
	RoleAdmin          Role = "ADMIN"
	RoleAdminDiscoteca Role = "ADMIN_DISCOTECA"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCliente:
		return RoleCliente, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAdminDiscoteca:
		return RoleAdminDiscoteca, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleCliente, RoleAdmin, RoleAdminDiscoteca:
		return true
	}
	return false
}

// Event states.
const (
	EventoActivo     = "ACTIVO"
	EventoCancelado  = "CANCELADO"
	EventoFinalizado = "FINALIZADO"
)

// Order states.
const (
	PedidoPendiente  = "PENDIENTE"
	PedidoEnProceso  = "EN_PROCESO"
	PedidoCompletado = "COMPLETADO"
	PedidoCancelado  = "CANCELADO"
)

// Usuario is a platform account: client, global admin or club admin.
type Usuario struct {
	ID               int     `json:"id"`
	Nombre           string  `json:"nombre"`
	Email            string  `json:"email"`
	PasswordHash     string  `json:"-"`
	Role             Role    `json:"role"`
	Monedero         float64 `json:"monedero"`
	PuntosRecompensa int     `json:"puntosRecompensa"`
}

// Ciudad is a city hosting one or more clubs.
type Ciudad struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Provincia    string `json:"provincia"`
	Pais         string `json:"pais"`
	CodigoPostal string `json:"codigoPostal"`
}

// Discoteca is a nightclub venue.
type Discoteca struct {
	ID             int    `json:"id"`
	Nombre         string `json:"nombre"`
	Direccion      string `json:"direccion"`
	Descripcion    string `json:"descripcion"`
	CapacidadTotal int    `json:"capacidadTotal"`
	Imagen         string `json:"imagen,omitempty"`
	CiudadID       int    `json:"idCiudad"`
}

// Dj is a performing artist bookable for events.
type Dj struct {
	ID            int    `json:"id"`
	Nombre        string `json:"nombre"`
	NombreReal    string `json:"nombreReal"`
	Biografia     string `json:"biografia"`
	GeneroMusical string `json:"generoMusical"`
	Contacto      string `json:"contacto"`
	Imagen        string `json:"imagen,omitempty"`
}

// Evento is a club night hosted at a discoteca.
type Evento struct {
	ID                  int       `json:"id"`
	Nombre              string    `json:"nombre"`
	FechaHora           time.Time `json:"fechaHora"`
	Descripcion         string    `json:"descripcion"`
	PrecioBaseEntrada   float64   `json:"precioBaseEntrada"`
	PrecioBaseReservado float64   `json:"precioBaseReservado"`
	Capacidad           int       `json:"capacidad"`
	TipoEvento          string    `json:"tipoEvento"`
	Estado              string    `json:"estado"`
	Imagen              string    `json:"imagen,omitempty"`
	DiscotecaID         int       `json:"idDiscoteca"`
	DjID                int       `json:"idDj"`
	UsuarioID           int       `json:"idUsuario"`
}

// TramoHorario is a pricing time slot belonging to a club.
type TramoHorario struct {
	ID                  int     `json:"id"`
	HoraInicio          string  `json:"horaInicio"`
	HoraFin             string  `json:"horaFin"`
	MultiplicadorPrecio float64 `json:"multiplicadorPrecio"`
	DiscotecaID         int     `json:"idDiscoteca"`
}

// Entrada is a ticket purchased by a user for an event.
type Entrada struct {
	ID             int       `json:"id"`
	Tipo           string    `json:"tipo"`
	FechaCompra    time.Time `json:"fechaCompra"`
	Precio         float64   `json:"precio"`
	UsuarioID      int       `json:"idUsuario"`
	EventoID       int       `json:"idEvento"`
	TramoHorarioID int       `json:"idTramoHorario"`
}

// Pedido is a cart checkout order.
type Pedido struct {
	ID          uuid.UUID  `json:"id"`
	Estado      string     `json:"estado"`
	PrecioTotal float64    `json:"precioTotal"`
	FechaCompra *time.Time `json:"fechaCompra,omitempty"`
	UsuarioID   int        `json:"idUsuario"`
}

// LineaPedido is one line of an order; the raw cart contents ride along as JSON.
type LineaPedido struct {
	ID       int       `json:"id"`
	Cantidad int       `json:"cantidad"`
	Precio   float64   `json:"precio"`
	Lineas   string    `json:"lineasPedidoJson"`
	PedidoID uuid.UUID `json:"idPedido"`
}

// Botella is a bottle product sold by a club.
type Botella struct {
	ID             int     `json:"id"`
	Nombre         string  `json:"nombre"`
	Tipo           string  `json:"tipo"`
	Tamano         string  `json:"tamano"`
	Precio         float64 `json:"precio"`
	Disponibilidad bool    `json:"disponibilidad"`
	Imagen         string  `json:"imagen,omitempty"`
	DiscotecaID    int     `json:"idDiscoteca"`
}

// ReservaBotella is a table-service reservation attached to a ticket.
type ReservaBotella struct {
	ID          int     `json:"id"`
	Aforo       int     `json:"aforo"`
	PrecioTotal float64 `json:"precioTotal"`
	TipoReserva string  `json:"tipoReserva"`
	EntradaID   int     `json:"idEntrada"`
	ZonaVipID   int     `json:"idZonaVip"`
}

// DetalleReservaBotella links a bottle product to a reservation.
type DetalleReservaBotella struct {
	ID               int     `json:"id"`
	Cantidad         int     `json:"cantidad"`
	PrecioUnidad     float64 `json:"precioUnidad"`
	BotellaID        int     `json:"idBotella"`
	ReservaBotellaID int     `json:"idReservaBotella"`
}

// Recompensa is a loyalty reward redeemable for points. A reward targets at
// most one of the optional FKs.
type Recompensa struct {
	ID               int       `json:"id"`
	Nombre           string    `json:"nombre"`
	Descripcion      string    `json:"descripcion"`
	PuntosNecesarios int       `json:"puntosNecesarios"`
	FechaInicio      time.Time `json:"fechaInicio"`
	FechaFin         time.Time `json:"fechaFin"`
	BotellaID        *int      `json:"idBotella,omitempty"`
	ReservaBotellaID *int      `json:"idReservaBotella,omitempty"`
	EntradaID        *int      `json:"idEntrada,omitempty"`
	EventoID         *int      `json:"idEvento,omitempty"`
}

// RecompensaTieneUsuario records a single redemption of a reward by a user.
type RecompensaTieneUsuario struct {
	ID             int       `json:"id"`
	RecompensaID   int       `json:"idRecompensa"`
	UsuarioID      int       `json:"idUsuario"`
	FechaCanjeado  time.Time `json:"fechaCanjeado"`
	PuntosGastados int       `json:"puntosGastados"`
}

// ZonaVip is a premium area inside a club.
type ZonaVip struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	AforoMaximo int    `json:"aforoMaximo"`
	Estado      string `json:"estado"`
	DiscotecaID int    `json:"idDiscoteca"`
}

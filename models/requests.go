package models

// Expected login payload.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"ana@x.com"`
	Password string `json:"password" validate:"required"       example:"pw"`
}

// Expected registration payload.
type RegisterRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// Payload for both create and full-replace update of a city.
type CiudadRequest struct {
	Nombre       string `json:"nombre"       validate:"required"`
	Provincia    string `json:"provincia"    validate:"required"`
	Pais         string `json:"pais"         validate:"required"`
	CodigoPostal string `json:"codigoPostal" validate:"required"`
}

type DiscotecaRequest struct {
	Nombre         string `json:"nombre"         validate:"required"`
	Direccion      string `json:"direccion"      validate:"required"`
	Descripcion    string `json:"descripcion"`
	CapacidadTotal int    `json:"capacidadTotal" validate:"gte=0"`
	Imagen         string `json:"imagen"`
	CiudadID       int    `json:"idCiudad"       validate:"required,gt=0"`
	// Optional administrator to attach on creation.
	AdminID *int `json:"idUsuarioAdmin,omitempty"`
}

type DjRequest struct {
	Nombre        string `json:"nombre" validate:"required"`
	NombreReal    string `json:"nombreReal"`
	Biografia     string `json:"biografia"`
	GeneroMusical string `json:"generoMusical"`
	Contacto      string `json:"contacto"`
	Imagen        string `json:"imagen"`
}

type EventoRequest struct {
	Nombre              string  `json:"nombre"            validate:"required"`
	FechaHora           string  `json:"fechaHora"         validate:"required"`
	Descripcion         string  `json:"descripcion"`
	PrecioBaseEntrada   float64 `json:"precioBaseEntrada" validate:"gte=0"`
	PrecioBaseReservado float64 `json:"precioBaseReservado" validate:"gte=0"`
	Capacidad           int     `json:"capacidad"         validate:"gte=0"`
	TipoEvento          string  `json:"tipoEvento"`
	Estado              string  `json:"estado"`
	Imagen              string  `json:"imagen"`
	DiscotecaID         int     `json:"idDiscoteca"       validate:"required,gt=0"`
	DjID                int     `json:"idDj"              validate:"required,gt=0"`
	UsuarioID           int     `json:"idUsuario"         validate:"required,gt=0"`
}

type TramoHorarioRequest struct {
	HoraInicio          string  `json:"horaInicio"          validate:"required"`
	HoraFin             string  `json:"horaFin"             validate:"required"`
	MultiplicadorPrecio float64 `json:"multiplicadorPrecio" validate:"gt=0"`
	DiscotecaID         int     `json:"idDiscoteca"         validate:"required,gt=0"`
}

type EntradaRequest struct {
	Tipo           string  `json:"tipo"           validate:"required"`
	Precio         float64 `json:"precio"         validate:"gte=0"`
	UsuarioID      int     `json:"idUsuario"      validate:"required,gt=0"`
	EventoID       int     `json:"idEvento"       validate:"required,gt=0"`
	TramoHorarioID int     `json:"idTramoHorario" validate:"required,gt=0"`
}

type PedidoRequest struct {
	Estado      string  `json:"estado"`
	PrecioTotal float64 `json:"precioTotal" validate:"gte=0"`
	UsuarioID   int     `json:"idUsuario"   validate:"required,gt=0"`
}

type LineaPedidoRequest struct {
	Cantidad int     `json:"cantidad"         validate:"required,gt=0"`
	Precio   float64 `json:"precio"           validate:"gte=0"`
	Lineas   string  `json:"lineasPedidoJson"`
	PedidoID string  `json:"idPedido"         validate:"required,uuid"`
}

type BotellaRequest struct {
	Nombre         string  `json:"nombre"      validate:"required"`
	Tipo           string  `json:"tipo"`
	Tamano         string  `json:"tamano"`
	Precio         float64 `json:"precio"      validate:"gte=0"`
	Disponibilidad bool    `json:"disponibilidad"`
	Imagen         string  `json:"imagen"`
	DiscotecaID    int     `json:"idDiscoteca" validate:"required,gt=0"`
}

type ReservaBotellaRequest struct {
	Aforo       int                            `json:"aforo"       validate:"gte=0"`
	PrecioTotal float64                        `json:"precioTotal" validate:"gte=0"`
	TipoReserva string                         `json:"tipoReserva"`
	EntradaID   int                            `json:"idEntrada"   validate:"required,gt=0"`
	ZonaVipID   int                            `json:"idZonaVip"   validate:"required,gt=0"`
	Detalles    []DetalleReservaBotellaRequest `json:"detalles,omitempty" validate:"dive"`
}

type DetalleReservaBotellaRequest struct {
	Cantidad         int     `json:"cantidad"         validate:"required,gt=0"`
	PrecioUnidad     float64 `json:"precioUnidad"     validate:"gte=0"`
	BotellaID        int     `json:"idBotella"        validate:"required,gt=0"`
	ReservaBotellaID int     `json:"idReservaBotella"`
}

type RecompensaRequest struct {
	Nombre           string `json:"nombre"           validate:"required"`
	Descripcion      string `json:"descripcion"`
	PuntosNecesarios int    `json:"puntosNecesarios" validate:"required,gt=0"`
	FechaInicio      string `json:"fechaInicio"      validate:"required"`
	FechaFin         string `json:"fechaFin"         validate:"required"`
	BotellaID        *int   `json:"idBotella,omitempty"`
	ReservaBotellaID *int   `json:"idReservaBotella,omitempty"`
	EntradaID        *int   `json:"idEntrada,omitempty"`
	EventoID         *int   `json:"idEvento,omitempty"`
}

// Payload to redeem a reward for the authenticated user.
type CanjeRequest struct {
	RecompensaID int `json:"idRecompensa" validate:"required,gt=0"`
}

type ZonaVipRequest struct {
	Nombre      string `json:"nombre"      validate:"required"`
	Descripcion string `json:"descripcion"`
	AforoMaximo int    `json:"aforoMaximo" validate:"gte=0"`
	Estado      string `json:"estado"`
	DiscotecaID int    `json:"idDiscoteca" validate:"required,gt=0"`
}

// Full-replace payload for a user (admin route); password optional.
type UsuarioRequest struct {
	Nombre           string  `json:"nombre" validate:"required"`
	Email            string  `json:"email"  validate:"required,email"`
	Password         string  `json:"password"`
	Role             string  `json:"role"`
	Monedero         float64 `json:"monedero"         validate:"gte=0"`
	PuntosRecompensa int     `json:"puntosRecompensa" validate:"gte=0"`
}

// Wallet top-up payload.
type MonederoRequest struct {
	Cantidad float64 `json:"cantidad" validate:"required,gt=0"`
}

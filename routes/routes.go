package routes

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clubsync-api/config"
	"clubsync-api/middlewares"
	"clubsync-api/models"
	"clubsync-api/routes/handlers"
)

/*
SetupRoutes builds the full API router.

Four layers share the /api prefix, each with its own middleware chain:

  - public: catalogue reads and the auth endpoints
  - authed: anything that needs a logged-in user
  - gestion: catalogue mutations, for ADMIN and ADMIN_DISCOTECA
  - admin / clubAdmin: role-exclusive subtrees

Identity resolution runs globally, so a valid token also reaches the public
routes and handlers there may personalize if they want.
*/
func SetupRoutes(pool *pgxpool.Pool, jwtSecret string, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	limiter := middlewares.NewRateLimiter(cfg.Rate.PerSecond, cfg.Rate.Burst)
	go limiter.CleanupVisitors()

	router.Use(limiter.Middleware)
	router.Use(middlewares.Monitor)
	router.Use(middlewares.Identify(pool, jwtSecret))

	router.HandleFunc("/health", healthHandler(pool)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	public := router.PathPrefix("/api").Subrouter()

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(middlewares.RequireAuth)

	gestion := router.PathPrefix("/api").Subrouter()
	gestion.Use(middlewares.RequireRole(models.RoleAdmin, models.RoleAdminDiscoteca))

	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(middlewares.RequireRole(models.RoleAdmin))

	clubAdmin := router.PathPrefix("/api/admin-discoteca").Subrouter()
	clubAdmin.Use(middlewares.RequireRole(models.RoleAdminDiscoteca))

	// auth
	public.HandleFunc("/auth/register", handlers.RegisterHandler(pool)).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", handlers.LoginHandler(pool, jwtSecret, cfg.JWT.ValidHours)).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", handlers.LogoutHandler(pool, jwtSecret)).Methods(http.MethodPost)

	// ciudades
	public.HandleFunc("/ciudades", handlers.GetCiudadesHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/ciudades/{id:[0-9]+}", handlers.GetCiudadByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/ciudades", handlers.CreateCiudadHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/ciudades/{id}", handlers.UpdateCiudadHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/ciudades/{id}", handlers.DeleteCiudadHandler(pool)).Methods(http.MethodDelete)

	// discotecas
	public.HandleFunc("/discotecas", handlers.GetDiscotecasHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/discotecas/ciudad/{ciudadId}", handlers.GetDiscotecasByCiudadHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/discotecas/{id:[0-9]+}", handlers.GetDiscotecaByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/discotecas", handlers.CreateDiscotecaHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/discotecas/{id}", handlers.UpdateDiscotecaHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/discotecas/{id}", handlers.DeleteDiscotecaHandler(pool)).Methods(http.MethodDelete)

	// djs
	public.HandleFunc("/djs", handlers.GetDjsHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/djs/{id:[0-9]+}", handlers.GetDjByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/djs", handlers.CreateDjHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/djs/{id}", handlers.UpdateDjHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/djs/{id}", handlers.DeleteDjHandler(pool)).Methods(http.MethodDelete)

	// eventos
	public.HandleFunc("/eventos", handlers.GetEventosHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/eventos/discoteca/{discotecaId}/activos", handlers.GetEventosActivosByDiscotecaHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/eventos/discoteca/{discotecaId}", handlers.GetEventosByDiscotecaHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/eventos/dj/{djId}", handlers.GetEventosByDjHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/eventos/{id:[0-9]+}", handlers.GetEventoByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/eventos", handlers.CreateEventoHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/eventos/{id}", handlers.UpdateEventoHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/eventos/{id}", handlers.DeleteEventoHandler(pool)).Methods(http.MethodDelete)

	// tramos horarios
	public.HandleFunc("/tramos-horarios", handlers.GetTramosHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/tramos-horarios/discoteca/{discotecaId}", handlers.GetTramosByDiscotecaHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/tramos-horarios/{id:[0-9]+}", handlers.GetTramoByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/tramos-horarios", handlers.CreateTramoHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/tramos-horarios/{id}", handlers.UpdateTramoHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/tramos-horarios/{id}", handlers.DeleteTramoHandler(pool)).Methods(http.MethodDelete)

	// botellas
	public.HandleFunc("/botellas", handlers.GetBotellasHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/botellas/discoteca/{discotecaId}", handlers.GetBotellasByDiscotecaHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/botellas/{id:[0-9]+}", handlers.GetBotellaByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/botellas", handlers.CreateBotellaHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/botellas/{id}", handlers.UpdateBotellaHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/botellas/{id}", handlers.DeleteBotellaHandler(pool)).Methods(http.MethodDelete)

	// zonas VIP
	public.HandleFunc("/zonas-vip", handlers.GetZonasVipHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/zonas-vip/discoteca/{discotecaId}", handlers.GetZonasVipByDiscotecaHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/zonas-vip/{id:[0-9]+}", handlers.GetZonaVipByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/zonas-vip", handlers.CreateZonaVipHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/zonas-vip/{id}", handlers.UpdateZonaVipHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/zonas-vip/{id}", handlers.DeleteZonaVipHandler(pool)).Methods(http.MethodDelete)

	// recompensas
	public.HandleFunc("/recompensas", handlers.GetRecompensasHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/recompensas/canjear", handlers.CanjearRecompensaHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/recompensas/canjes", handlers.GetCanjesByUsuarioHandler(pool)).Methods(http.MethodGet)
	public.HandleFunc("/recompensas/{id:[0-9]+}", handlers.GetRecompensaByIDHandler(pool)).Methods(http.MethodGet)
	gestion.HandleFunc("/recompensas", handlers.CreateRecompensaHandler(pool)).Methods(http.MethodPost)
	gestion.HandleFunc("/recompensas/{id}", handlers.UpdateRecompensaHandler(pool)).Methods(http.MethodPut)
	gestion.HandleFunc("/recompensas/{id}", handlers.DeleteRecompensaHandler(pool)).Methods(http.MethodDelete)

	// entradas
	authed.HandleFunc("/entradas", handlers.GetEntradasHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/entradas/usuario/{usuarioId}", handlers.GetEntradasByUsuarioHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/entradas/evento/{eventoId}", handlers.GetEntradasByEventoHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/entradas/{id}", handlers.GetEntradaByIDHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/entradas", handlers.CreateEntradaHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/entradas/{id}", handlers.UpdateEntradaHandler(pool)).Methods(http.MethodPut)
	authed.HandleFunc("/entradas/{id}", handlers.DeleteEntradaHandler(pool)).Methods(http.MethodDelete)

	// pedidos y líneas
	authed.HandleFunc("/pedidos", handlers.GetPedidosHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos/usuario/{usuarioId}", handlers.GetPedidosByUsuarioHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos/{id}/completar", handlers.CompletarPedidoHandler(pool)).Methods(http.MethodPut)
	authed.HandleFunc("/pedidos/{id}/lineas", handlers.GetLineasByPedidoHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos/{id}", handlers.GetPedidoByIDHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos", handlers.CreatePedidoHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/pedidos/{id}", handlers.UpdatePedidoHandler(pool)).Methods(http.MethodPut)
	authed.HandleFunc("/pedidos/{id}", handlers.DeletePedidoHandler(pool)).Methods(http.MethodDelete)

	authed.HandleFunc("/lineas-pedido", handlers.CreateLineaPedidoHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/lineas-pedido/{id}", handlers.GetLineaByIDHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/lineas-pedido/{id}", handlers.UpdateLineaPedidoHandler(pool)).Methods(http.MethodPut)
	authed.HandleFunc("/lineas-pedido/{id}", handlers.DeleteLineaPedidoHandler(pool)).Methods(http.MethodDelete)

	// reservas de botella y detalles
	authed.HandleFunc("/reservas", handlers.GetReservasHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/reservas/entrada/{entradaId}", handlers.GetReservasByEntradaHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/reservas/{reservaId}/detalles", handlers.GetDetallesByReservaHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/reservas/{id}", handlers.GetReservaByIDHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/reservas", handlers.CreateReservaHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/reservas/{id}", handlers.UpdateReservaHandler(pool)).Methods(http.MethodPut)
	authed.HandleFunc("/reservas/{id}", handlers.DeleteReservaHandler(pool)).Methods(http.MethodDelete)

	authed.HandleFunc("/detalles-reserva", handlers.CreateDetalleReservaHandler(pool)).Methods(http.MethodPost)
	authed.HandleFunc("/detalles-reserva/{id}", handlers.DeleteDetalleReservaHandler(pool)).Methods(http.MethodDelete)

	// usuarios
	authed.HandleFunc("/usuarios/perfil", handlers.GetPerfilHandler(pool)).Methods(http.MethodGet)
	authed.HandleFunc("/usuarios/monedero", handlers.RecargarMonederoHandler(pool)).Methods(http.MethodPut)
	admin.HandleFunc("/usuarios", handlers.GetUsuariosHandler(pool)).Methods(http.MethodGet)
	admin.HandleFunc("/usuarios/{id}", handlers.GetUsuarioByIDHandler(pool)).Methods(http.MethodGet)
	admin.HandleFunc("/usuarios/{id}", handlers.DeleteUsuarioHandler(pool)).Methods(http.MethodDelete)
	// Kept public for compatibility with the current frontend, which edits the
	// profile before logging back in. Gate it once the frontend sends the token.
	public.HandleFunc("/usuarios/{id:[0-9]+}", handlers.UpdateUsuarioHandler(pool)).Methods(http.MethodPut)

	// estadísticas (solo ADMIN)
	admin.HandleFunc("/estadisticas/recaudacion/{discotecaId}", handlers.GetRecaudacionHandler(pool)).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/asistencia/{eventoId}", handlers.GetAsistenciaHandler(pool)).Methods(http.MethodGet)

	// panel del administrador de discoteca
	clubAdmin.HandleFunc("/discoteca", handlers.GetAdministradaHandler(pool)).Methods(http.MethodGet)
	clubAdmin.HandleFunc("/eventos", handlers.GetEventosAdministradosHandler(pool)).Methods(http.MethodGet)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{cfg.CORS.Origin}),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.ExposedHeaders([]string{"Authorization"}),
		gorillahandlers.AllowCredentials(),
	)

	return cors(router)
}

// healthHandler reports liveness and database reachability.
func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

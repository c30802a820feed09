package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const pedidoColumns = `id, estado, precio_total, fecha_compra, usuario_id`

func scanPedido(row pgx.Row, p *models.Pedido) error {
	return row.Scan(&p.ID, &p.Estado, &p.PrecioTotal, &p.FechaCompra, &p.UsuarioID)
}

// parsePedidoID extracts the order UUID from the route.
func parsePedidoID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func queryPedidos(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los pedidos")
		return
	}
	defer rows.Close()

	pedidos := []models.Pedido{}
	for rows.Next() {
		var p models.Pedido
		if err := scanPedido(rows, &p); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los pedidos")
			return
		}
		pedidos = append(pedidos, p)
	}
	writeJSONResponse(w, http.StatusOK, pedidos)
}

// GetPedidosHandler lists all orders.
func GetPedidosHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryPedidos(w, r, pool, `SELECT `+pedidoColumns+` FROM pedidos ORDER BY fecha_compra DESC NULLS LAST`)
	}
}

// GetPedidosByUsuarioHandler lists the orders of one user.
func GetPedidosByUsuarioHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarioID, err := parsePathInt(r, "usuarioId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryPedidos(w, r, pool,
			`SELECT `+pedidoColumns+` FROM pedidos WHERE usuario_id = $1 ORDER BY fecha_compra DESC NULLS LAST`,
			usuarioID)
	}
}

// GetPedidoByIDHandler returns a single order by its UUID.
func GetPedidoByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePedidoID(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		var p models.Pedido
		err = scanPedido(pool.QueryRow(r.Context(),
			`SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id), &p)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Pedido no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el pedido")
			return
		}

		writeJSONResponse(w, http.StatusOK, p)
	}
}

// CreatePedidoHandler opens an order. The database assigns the UUID and
// new orders start PENDIENTE unless the payload says otherwise.
func CreatePedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PedidoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		estado := req.Estado
		if estado == "" {
			estado = models.PedidoPendiente
		}

		var id uuid.UUID
		err := pool.QueryRow(r.Context(), `
			INSERT INTO pedidos (estado, precio_total, usuario_id)
			VALUES ($1, $2, $3)
			RETURNING id`,
			estado, req.PrecioTotal, req.UsuarioID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear el pedido")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreateUUID{Message: "Pedido creado exitosamente", ID: id.String()})
	}
}

// UpdatePedidoHandler replaces an order. The path id always wins over the body.
func UpdatePedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePedidoID(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		var req models.PedidoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		estado := req.Estado
		if estado == "" {
			estado = models.PedidoPendiente
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE pedidos
			SET estado = $1, precio_total = $2, usuario_id = $3
			WHERE id = $4`,
			estado, req.PrecioTotal, req.UsuarioID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el pedido")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Pedido no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Pedido actualizado exitosamente"})
	}
}

/*
CompletarPedidoHandler marks an order COMPLETADO and stamps the purchase
date the first time. The transition is idempotent: completing an already
completed order answers 200 again with the original purchase date intact.
*/
func CompletarPedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePedidoID(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		var p models.Pedido
		err = scanPedido(pool.QueryRow(r.Context(), `
			UPDATE pedidos
			SET estado = $2, fecha_compra = COALESCE(fecha_compra, NOW())
			WHERE id = $1
			RETURNING `+pedidoColumns,
			id, models.PedidoCompletado), &p)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Pedido no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo completar el pedido")
			return
		}

		writeJSONResponse(w, http.StatusOK, p)
	}
}

// DeletePedidoHandler removes an order; its lines cascade away.
func DeletePedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePedidoID(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM pedidos WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el pedido")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Pedido no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

const lineaColumns = `id, cantidad, precio, lineas_pedido_json, pedido_id`

func scanLinea(row pgx.Row, l *models.LineaPedido) error {
	return row.Scan(&l.ID, &l.Cantidad, &l.Precio, &l.Lineas, &l.PedidoID)
}

// GetLineasByPedidoHandler lists the lines of one order.
func GetLineasByPedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePedidoID(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		rows, err := pool.Query(r.Context(),
			`SELECT `+lineaColumns+` FROM lineas_pedido WHERE pedido_id = $1 ORDER BY id ASC`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las líneas del pedido")
			return
		}
		defer rows.Close()

		lineas := []models.LineaPedido{}
		for rows.Next() {
			var l models.LineaPedido
			if err := scanLinea(rows, &l); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las líneas del pedido")
				return
			}
			lineas = append(lineas, l)
		}
		writeJSONResponse(w, http.StatusOK, lineas)
	}
}

// GetLineaByIDHandler returns a single order line by ID.
func GetLineaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var l models.LineaPedido
		err = scanLinea(pool.QueryRow(r.Context(),
			`SELECT `+lineaColumns+` FROM lineas_pedido WHERE id = $1`, id), &l)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "LineaPedido no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la línea del pedido")
			return
		}

		writeJSONResponse(w, http.StatusOK, l)
	}
}

// CreateLineaPedidoHandler appends a line to an order.
func CreateLineaPedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LineaPedidoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		pedidoID, err := uuid.Parse(req.PedidoID)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		lineas := req.Lineas
		if lineas == "" {
			lineas = "{}"
		}

		var id int
		err = pool.QueryRow(r.Context(), `
			INSERT INTO lineas_pedido (cantidad, precio, lineas_pedido_json, pedido_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			req.Cantidad, req.Precio, lineas, pedidoID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la línea del pedido")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "LineaPedido creada exitosamente", ID: id})
	}
}

// UpdateLineaPedidoHandler replaces an order line. The path id always wins over the body.
func UpdateLineaPedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.LineaPedidoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		pedidoID, err := uuid.Parse(req.PedidoID)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, "El identificador del pedido no es un UUID válido")
			return
		}

		lineas := req.Lineas
		if lineas == "" {
			lineas = "{}"
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE lineas_pedido
			SET cantidad = $1, precio = $2, lineas_pedido_json = $3, pedido_id = $4
			WHERE id = $5`,
			req.Cantidad, req.Precio, lineas, pedidoID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la línea del pedido")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "LineaPedido no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "LineaPedido actualizada exitosamente"})
	}
}

// DeleteLineaPedidoHandler removes an order line.
func DeleteLineaPedidoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM lineas_pedido WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la línea del pedido")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "LineaPedido no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

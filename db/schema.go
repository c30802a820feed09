package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Every ownership edge cascades on delete, so removing a user, club or order
// takes its dependents with it without handler-level cleanup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ciudades (
		id            SERIAL PRIMARY KEY,
		nombre        TEXT NOT NULL,
		provincia     TEXT NOT NULL,
		pais          TEXT NOT NULL,
		codigo_postal TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
		id                SERIAL PRIMARY KEY,
		nombre            TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		role              TEXT NOT NULL DEFAULT 'CLIENTE',
		monedero          NUMERIC(10,2) NOT NULL DEFAULT 0,
		puntos_recompensa INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS discotecas (
		id              SERIAL PRIMARY KEY,
		nombre          TEXT NOT NULL,
		direccion       TEXT NOT NULL,
		descripcion     TEXT NOT NULL DEFAULT '',
		capacidad_total INT NOT NULL DEFAULT 0,
		imagen          TEXT NOT NULL DEFAULT '',
		ciudad_id       INT NOT NULL REFERENCES ciudades(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS usuario_discoteca (
		usuario_id   INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		discoteca_id INT NOT NULL REFERENCES discotecas(id) ON DELETE CASCADE,
		PRIMARY KEY (usuario_id, discoteca_id)
	)`,
	`CREATE TABLE IF NOT EXISTS djs (
		id             SERIAL PRIMARY KEY,
		nombre         TEXT NOT NULL,
		nombre_real    TEXT NOT NULL DEFAULT '',
		biografia      TEXT NOT NULL DEFAULT '',
		genero_musical TEXT NOT NULL DEFAULT '',
		contacto       TEXT NOT NULL DEFAULT '',
		imagen         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS eventos (
		id                    SERIAL PRIMARY KEY,
		nombre                TEXT NOT NULL,
		fecha_hora            TIMESTAMPTZ NOT NULL,
		descripcion           TEXT NOT NULL DEFAULT '',
		precio_base_entrada   NUMERIC(10,2) NOT NULL DEFAULT 0,
		precio_base_reservado NUMERIC(10,2) NOT NULL DEFAULT 0,
		capacidad             INT NOT NULL DEFAULT 0,
		tipo_evento           TEXT NOT NULL DEFAULT '',
		estado                TEXT NOT NULL DEFAULT 'ACTIVO',
		imagen                TEXT NOT NULL DEFAULT '',
		discoteca_id          INT NOT NULL REFERENCES discotecas(id) ON DELETE CASCADE,
		dj_id                 INT NOT NULL REFERENCES djs(id) ON DELETE CASCADE,
		usuario_id            INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tramos_horarios (
		id                   SERIAL PRIMARY KEY,
		hora_inicio          TEXT NOT NULL,
		hora_fin             TEXT NOT NULL,
		multiplicador_precio NUMERIC(5,2) NOT NULL DEFAULT 1,
		discoteca_id         INT NOT NULL REFERENCES discotecas(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS entradas (
		id               SERIAL PRIMARY KEY,
		tipo             TEXT NOT NULL,
		fecha_compra     TIMESTAMPTZ NOT NULL DEFAULT now(),
		precio           NUMERIC(10,2) NOT NULL DEFAULT 0,
		usuario_id       INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		evento_id        INT NOT NULL REFERENCES eventos(id) ON DELETE CASCADE,
		tramo_horario_id INT NOT NULL REFERENCES tramos_horarios(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS pedidos (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		estado       TEXT NOT NULL DEFAULT 'PENDIENTE',
		precio_total NUMERIC(10,2) NOT NULL DEFAULT 0,
		fecha_compra TIMESTAMPTZ,
		usuario_id   INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS lineas_pedido (
		id                 SERIAL PRIMARY KEY,
		cantidad           INT NOT NULL,
		precio             NUMERIC(10,2) NOT NULL DEFAULT 0,
		lineas_pedido_json JSONB NOT NULL DEFAULT '{}',
		pedido_id          UUID NOT NULL REFERENCES pedidos(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS botellas (
		id             SERIAL PRIMARY KEY,
		nombre         TEXT NOT NULL,
		tipo           TEXT NOT NULL DEFAULT '',
		tamano         TEXT NOT NULL DEFAULT '',
		precio         NUMERIC(10,2) NOT NULL DEFAULT 0,
		disponibilidad BOOLEAN NOT NULL DEFAULT TRUE,
		imagen         TEXT NOT NULL DEFAULT '',
		discoteca_id   INT NOT NULL REFERENCES discotecas(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS zonas_vip (
		id           SERIAL PRIMARY KEY,
		nombre       TEXT NOT NULL,
		descripcion  TEXT NOT NULL DEFAULT '',
		aforo_maximo INT NOT NULL DEFAULT 0,
		estado       TEXT NOT NULL DEFAULT 'DISPONIBLE',
		discoteca_id INT NOT NULL REFERENCES discotecas(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reservas_botella (
		id           SERIAL PRIMARY KEY,
		aforo        INT NOT NULL DEFAULT 0,
		precio_total NUMERIC(10,2) NOT NULL DEFAULT 0,
		tipo_reserva TEXT NOT NULL DEFAULT '',
		entrada_id   INT NOT NULL REFERENCES entradas(id) ON DELETE CASCADE,
		zona_vip_id  INT NOT NULL REFERENCES zonas_vip(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS detalles_reserva_botella (
		id                 SERIAL PRIMARY KEY,
		cantidad           INT NOT NULL,
		precio_unidad      NUMERIC(10,2) NOT NULL DEFAULT 0,
		botella_id         INT NOT NULL REFERENCES botellas(id) ON DELETE CASCADE,
		reserva_botella_id INT NOT NULL REFERENCES reservas_botella(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS recompensas (
		id                 SERIAL PRIMARY KEY,
		nombre             TEXT NOT NULL,
		descripcion        TEXT NOT NULL DEFAULT '',
		puntos_necesarios  INT NOT NULL,
		fecha_inicio       TIMESTAMPTZ NOT NULL,
		fecha_fin          TIMESTAMPTZ NOT NULL,
		botella_id         INT REFERENCES botellas(id) ON DELETE CASCADE,
		reserva_botella_id INT REFERENCES reservas_botella(id) ON DELETE CASCADE,
		entrada_id         INT REFERENCES entradas(id) ON DELETE CASCADE,
		evento_id          INT REFERENCES eventos(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS recompensa_tiene_usuario (
		id              SERIAL PRIMARY KEY,
		recompensa_id   INT NOT NULL REFERENCES recompensas(id) ON DELETE CASCADE,
		usuario_id      INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		fecha_canjeado  TIMESTAMPTZ NOT NULL DEFAULT now(),
		puntos_gastados INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS token_blacklist (
		token      TEXT PRIMARY KEY,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// InitSchema creates every table the API relies on.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

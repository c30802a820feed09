package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"clubsync-api/models"
)

// Fetch the IDs of existing records from given table.
func fetchIds(ctx context.Context, pool *pgxpool.Pool, table string) []int {
	rows, err := pool.Query(ctx, "SELECT id FROM "+table)
	if err != nil {
		return []int{}
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return []int{}
		}
		ids = append(ids, id)
	}
	return ids
}

/*
EnsureAdminUser guarantees an ADMIN account exists.

Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD, falling back to
admin@clubsync.local / admin for local development.
*/
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@clubsync.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuarios WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO usuarios (nombre, email, password_hash, role)
		VALUES ('Administrador', $1, $2, $3)`,
		email, string(hash), models.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	return nil
}

// Populate the database with fake city records.
func populateCiudades(ctx context.Context, pool *pgxpool.Pool, fake *gofakeit.Faker) error {
	batch := &pgx.Batch{}
	for i := 0; i < 8; i++ {
		batch.Queue(`
			INSERT INTO ciudades (nombre, provincia, pais, codigo_postal)
			VALUES ($1, $2, $3, $4)`,
			fake.City(), fake.State(), fake.Country(), fake.Zip(),
		)
	}
	return pool.SendBatch(ctx, batch).Close()
}

// Populate the database with fake club records.
func populateDiscotecas(ctx context.Context, pool *pgxpool.Pool, fake *gofakeit.Faker) error {
	ciudadIds := fetchIds(ctx, pool, "ciudades")
	if len(ciudadIds) == 0 {
		return fmt.Errorf("no cities to attach clubs to")
	}

	batch := &pgx.Batch{}
	for i := 0; i < 12; i++ {
		batch.Queue(`
			INSERT INTO discotecas (nombre, direccion, descripcion, capacidad_total, ciudad_id)
			VALUES ($1, $2, $3, $4, $5)`,
			fake.Company(), fake.Street(), fake.Sentence(8),
			fake.Number(200, 2000), ciudadIds[i%len(ciudadIds)],
		)
	}
	return pool.SendBatch(ctx, batch).Close()
}

// Populate the database with fake DJ records.
func populateDjs(ctx context.Context, pool *pgxpool.Pool, fake *gofakeit.Faker) error {
	batch := &pgx.Batch{}
	for i := 0; i < 10; i++ {
		batch.Queue(`
			INSERT INTO djs (nombre, nombre_real, biografia, genero_musical, contacto)
			VALUES ($1, $2, $3, $4, $5)`,
			"DJ "+fake.Username(), fake.Name(), fake.Sentence(12),
			fake.RandomString([]string{"techno", "house", "reggaeton", "edm", "latin"}),
			fake.Email(),
		)
	}
	return pool.SendBatch(ctx, batch).Close()
}

// Populate the database with fake client accounts.
func populateUsuarios(ctx context.Context, pool *pgxpool.Pool, fake *gofakeit.Faker) error {
	batch := &pgx.Batch{}
	for i := 0; i < 25; i++ {
		password := fake.Password(true, true, true, false, false, 12)
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO usuarios (nombre, email, password_hash, role, monedero, puntos_recompensa)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			fake.Name(), fake.Email(), string(hash), models.RoleCliente,
			fake.Price(0, 200), fake.Number(0, 500),
		)
	}
	return pool.SendBatch(ctx, batch).Close()
}

// Populate the database with fake events, time slots, bottles and VIP zones.
func populateCatalogo(ctx context.Context, pool *pgxpool.Pool, fake *gofakeit.Faker) error {
	discotecaIds := fetchIds(ctx, pool, "discotecas")
	djIds := fetchIds(ctx, pool, "djs")
	usuarioIds := fetchIds(ctx, pool, "usuarios")
	if len(discotecaIds) == 0 || len(djIds) == 0 || len(usuarioIds) == 0 {
		return fmt.Errorf("catalog prerequisites missing")
	}

	estados := []string{models.EventoActivo, models.EventoActivo, models.EventoCancelado, models.EventoFinalizado}

	batch := &pgx.Batch{}
	for i := 0; i < 30; i++ {
		batch.Queue(`
			INSERT INTO eventos (nombre, fecha_hora, descripcion, precio_base_entrada,
			                     precio_base_reservado, capacidad, tipo_evento, estado,
			                     discoteca_id, dj_id, usuario_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			fake.HipsterWord()+" night",
			fake.DateRange(time.Now(), time.Now().AddDate(0, 3, 0)),
			fake.Sentence(10),
			fake.Price(10, 40), fake.Price(60, 250), fake.Number(100, 1500),
			fake.RandomString([]string{"concierto", "sesion", "festival"}),
			estados[i%len(estados)],
			discotecaIds[i%len(discotecaIds)], djIds[i%len(djIds)], usuarioIds[i%len(usuarioIds)],
		)
	}
	for _, id := range discotecaIds {
		batch.Queue(`
			INSERT INTO tramos_horarios (hora_inicio, hora_fin, multiplicador_precio, discoteca_id)
			VALUES ('23:00', '01:00', 1.00, $1), ('01:00', '03:00', 1.25, $1), ('03:00', '06:00', 1.50, $1)`,
			id,
		)
		batch.Queue(`
			INSERT INTO botellas (nombre, tipo, tamano, precio, disponibilidad, discoteca_id)
			VALUES ($1, 'vodka', '700ml', $2, TRUE, $4),
			       ($3, 'ron', '1L', $2, TRUE, $4)`,
			fake.BeerName(), fake.Price(60, 300), fake.BeerName(), id,
		)
		batch.Queue(`
			INSERT INTO zonas_vip (nombre, descripcion, aforo_maximo, estado, discoteca_id)
			VALUES ($1, $2, $3, 'DISPONIBLE', $4)`,
			"Zona "+fake.LetterN(1), fake.Sentence(6), fake.Number(10, 60), id,
		)
	}
	return pool.SendBatch(ctx, batch).Close()
}

/*
PopulateDatabase fills the database with fake records for local development.

Seeds cities, clubs, DJs, client accounts and the derived catalog (events,
time slots, bottles, VIP zones), then makes sure the admin account exists.
*/
func PopulateDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	fake := gofakeit.New(0)

	steps := []func(context.Context, *pgxpool.Pool, *gofakeit.Faker) error{
		populateCiudades,
		populateDiscotecas,
		populateDjs,
		populateUsuarios,
		populateCatalogo,
	}
	for _, step := range steps {
		if err := step(ctx, pool, fake); err != nil {
			return err
		}
	}
	return EnsureAdminUser(ctx, pool)
}

package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/encartes-api/internal/application/dto"
)

const healthPingTimeout = 2 * time.Second

// Pinger comprueba la conexión con la base de datos (pgxpool.Pool lo implementa).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthUseCase estado del servicio para el endpoint público de salud.
type HealthUseCase struct {
	db      Pinger
	env     string
	started time.Time
	now     func() time.Time
}

// NewHealthUseCase construye el caso de uso; el uptime se cuenta desde aquí.
func NewHealthUseCase(db Pinger, env string) *HealthUseCase {
	return &HealthUseCase{db: db, env: env, started: time.Now(), now: time.Now}
}

// Check hace ping a la base de datos y arma el estado.
func (uc *HealthUseCase) Check(ctx context.Context) dto.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	status, database := "ok", "connected"
	if uc.db == nil || uc.db.Ping(ctx) != nil {
		status, database = "error", "disconnected"
	}
	now := uc.now()
	return dto.HealthStatus{
		Status:      status,
		Timestamp:   now.UTC(),
		Uptime:      now.Sub(uc.started).Seconds(),
		Database:    database,
		Environment: uc.env,
	}
}

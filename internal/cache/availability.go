package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
)

// Availability guarda respostas de disponibilidade no redis por um
// TTL curto. O cache é só uma dica para a tela de escolha de
// horário; a admissão real sempre revalida no banco, então servir
// um resultado levemente velho aqui é aceitável.
//
// Receiver nil é válido e desliga o cache (redis não configurado).
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Availability{rdb: rdb, ttl: ttl}
}

func key(staffID, serviceID uint, date string) string {
	return fmt.Sprintf("avail:%d:%d:%s", staffID, serviceID, date)
}

func (c *Availability) Get(
	ctx context.Context,
	staffID, serviceID uint,
	date string,
) ([]domain.TimeSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(staffID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *Availability) Set(
	ctx context.Context,
	staffID, serviceID uint,
	date string,
	slots []domain.TimeSlot,
) {

	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(staffID, serviceID, date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache set failed")
	}
}

// Invalidate apaga todas as entradas do profissional na data,
// qualquer que seja o serviço. Chamado em toda mutação de reserva.
func (c *Availability) Invalidate(ctx context.Context, staffID uint, date string) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*:%s", staffID, date)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("availability cache invalidate failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache scan failed")
	}
}

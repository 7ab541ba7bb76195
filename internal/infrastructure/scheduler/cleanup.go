// Package scheduler runs periodic maintenance: expired refresh tokens and
// expired share links are swept hourly.
package scheduler

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
)

const sweepTimeout = 30 * time.Second

type Cleaner struct {
	refreshTokens user.RefreshTokenRepository
	sharedLinks   share.Repository
	logger        zerolog.Logger
	ctab          *crontab.Crontab
}

func NewCleaner(
	refreshTokens user.RefreshTokenRepository,
	sharedLinks share.Repository,
	logger zerolog.Logger,
) *Cleaner {
	return &Cleaner{
		refreshTokens: refreshTokens,
		sharedLinks:   sharedLinks,
		logger:        logger.With().Str("component", "cleanup").Logger(),
	}
}

// Start schedules the hourly sweep.
func (c *Cleaner) Start() error {
	c.ctab = crontab.New()
	return c.ctab.AddJob("0 * * * *", c.sweep)
}

// Stop removes all scheduled jobs.
func (c *Cleaner) Stop() {
	if c.ctab != nil {
		c.ctab.Clear()
	}
}

// sweep failures are logged, never fatal: the next run retries.
func (c *Cleaner) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	now := time.Now()

	tokens, err := c.refreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to sweep expired refresh tokens")
	}

	links, err := c.sharedLinks.DeleteExpired(ctx, now)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to sweep expired share links")
	}

	if tokens > 0 || links > 0 {
		c.logger.Info().
			Int64("refresh_tokens", tokens).
			Int64("share_links", links).
			Msg("cleanup sweep finished")
	}
}

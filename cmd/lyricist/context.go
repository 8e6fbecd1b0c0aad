package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lyricist/internal/config"
	"lyricist/internal/logging"
	"lyricist/internal/lyrics"
	"lyricist/internal/ratelimit"
	"lyricist/internal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.Paths.CacheDB, logger)
	if err != nil {
		return fmt.Errorf("open lyrics cache: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// newService builds a lyrics service over the cache. resolver may be nil for
// cache-only commands, which never bypass the cache.
func (c *commandContext) newService(st *store.Store, resolver lyrics.Resolver) (*lyrics.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return lyrics.NewService(st, resolver,
		lyrics.WithLogger(logger),
		lyrics.WithForceRefresh(resolver != nil && cfg.Lyrics.ForceRefresh),
	), nil
}

// resolveQuery runs a free-text resolve with the configured artist fallback.
func (c *commandContext) resolveQuery(cmd *cobra.Command, svc *lyrics.Service, query string) (lyrics.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return lyrics.Result{}, err
	}
	return svc.ResolveDetailed(cmd.Context(), query, cfg.Lyrics.AllowArtistFallback)
}

func (c *commandContext) newLimiter() (*ratelimit.Limiter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ratelimit.New(cfg.RateInterval(),
		ratelimit.WithBurstWindow(cfg.BurstWindow()),
		ratelimit.WithLockPath(cfg.RateLimit.LockPath),
		ratelimit.WithLogger(logger),
	), nil
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigSuite) write(content string) string {
	path := filepath.Join(s.dir, "config.yml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigSuite) TestDefaultsWhenFileMissing() {
	cfg, err := Load(filepath.Join(s.dir, "nope.yml"))
	s.Require().NoError(err)

	s.Equal(4567, cfg.Web.Port)
	s.Equal("memory", cfg.Store.Backend)
	s.Equal(5*time.Minute, cfg.Stats.Interval.Std())
	s.Equal(5*time.Minute, cfg.Verification.CodeTTL.Std())
	s.Equal("world", cfg.DefaultWorld)
	s.Empty(cfg.Web.Secret)
}

func (s *ConfigSuite) TestLoadFullFile() {
	path := s.write(`
web:
  port: 8090
  secret: topsecret
store:
  backend: redis
  redis_url: redis://localhost:6379
  profile_ttl: 24h
stats:
  url: https://backend.example/stats
  secret: statskey
  interval: 10m
verification:
  code_ttl: 2m
bridge:
  queue_size: 128
  submit_timeout: 3s
default_world: hub
capabilities: [fabled, economy]
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(8090, cfg.Web.Port)
	s.Equal("topsecret", cfg.Web.Secret)
	s.Equal("redis", cfg.Store.Backend)
	s.Equal(24*time.Hour, cfg.Store.ProfileTTL.Std())
	s.Equal("https://backend.example/stats", cfg.Stats.URL)
	s.Equal(10*time.Minute, cfg.Stats.Interval.Std())
	s.Equal(2*time.Minute, cfg.Verification.CodeTTL.Std())
	s.Equal(128, cfg.Bridge.QueueSize)
	s.Equal(3*time.Second, cfg.Bridge.SubmitTimeout.Std())
	s.Equal("hub", cfg.DefaultWorld)
	s.Equal([]string{"fabled", "economy"}, cfg.Capabilities)
}

func (s *ConfigSuite) TestInvalidDurationRejected() {
	path := s.write("stats:\n  interval: soon\n")
	_, err := Load(path)
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid duration")
}

func (s *ConfigSuite) TestEnvOverridesFile() {
	path := s.write("web:\n  secret: from-file\n")
	s.T().Setenv("ATLAS_WEB_SECRET", "from-env")
	s.T().Setenv("ATLAS_STATS_URL", "https://env.example/stats")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("from-env", cfg.Web.Secret)
	s.Equal("https://env.example/stats", cfg.Stats.URL)
}

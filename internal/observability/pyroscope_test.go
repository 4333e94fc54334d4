package observability

import (
	"testing"
	"time"

	"github.com/riskibarqy/sports-intel/internal/config"
)

func TestInitPyroscope_DisabledReturnsNoopStop(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestPyroscopeConfig_Tags(t *testing.T) {
	t.Parallel()

	got := pyroscopeConfig(config.Config{
		AppEnv:              config.EnvStage,
		ServiceName:         "sports-intel-api",
		CacheBackend:        config.CacheBackendRedis,
		PyroscopeAppName:    "sports-intel",
		PyroscopeUploadRate: 10 * time.Second,
	})
	if got.ApplicationName != "sports-intel" || got.UploadRate != 10*time.Second {
		t.Fatalf("unexpected config %+v", got)
	}
	if got.Tags["env"] != config.EnvStage || got.Tags["cache_backend"] != config.CacheBackendRedis {
		t.Fatalf("unexpected tags %v", got.Tags)
	}
}

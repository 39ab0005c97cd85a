package mdfront

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// staticSource resolves to a fixed config or error.
type staticSource struct {
	cfg PipelineConfig
	err error
}

func (s staticSource) Resolve() (PipelineConfig, error) { return s.cfg, s.err }

func TestConfigResolution(t *testing.T) {
	t.Parallel()

	t.Run("default when nothing provided", func(t *testing.T) {
		t.Parallel()

		svc := NewService()
		cfg := svc.Config()
		if cfg.Slug || cfg.Autolink || cfg.Sanitize != nil || len(cfg.PreStages) != 0 || len(cfg.PostStages) != 0 {
			t.Errorf("config = %+v, want default no-op", cfg)
		}
	})

	t.Run("source supplies config", func(t *testing.T) {
		t.Parallel()

		svc := NewService(WithConfigSource(staticSource{cfg: PipelineConfig{Slug: true}}))
		if !svc.Config().Slug {
			t.Error("source config not applied")
		}
	})

	t.Run("failing source degrades silently to default", func(t *testing.T) {
		t.Parallel()

		svc := NewService(WithConfigSource(staticSource{err: errors.New("unreachable")}))
		cfg := svc.Config()
		if cfg.Slug || cfg.Sanitize != nil {
			t.Errorf("config = %+v, want default", cfg)
		}
	})

	t.Run("injected config wins over source", func(t *testing.T) {
		t.Parallel()

		svc := NewService(
			WithConfigSource(staticSource{cfg: PipelineConfig{Slug: true}}),
			WithConfig(PipelineConfig{Autolink: true}),
		)
		cfg := svc.Config()
		if cfg.Slug {
			t.Error("source config overrode injected config")
		}
		if !cfg.Autolink {
			t.Error("injected config not applied")
		}
	})

	t.Run("caller cannot mutate resolved config", func(t *testing.T) {
		t.Parallel()

		injected := PipelineConfig{PreStages: []StageEntry{Bare(NewSlugStage())}}
		svc := NewService(WithConfig(injected))

		// Mutating either the original or the returned copy must not
		// reach the service-owned instance.
		injected.PreStages[0] = Bare(NewAutolinkStage())
		got := svc.Config()
		got.PreStages[0] = Bare(NewAutolinkStage())

		if svc.Config().PreStages[0].Stage().Name() != "slug" {
			t.Error("service-owned config was mutated")
		}
	})
}

func TestFileConfigSource(t *testing.T) {
	t.Parallel()

	t.Run("resolves yaml file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		content := "slug: true\nautolink: true\nsanitize:\n  enabled: true\n  allowStandard: true\n  allowedTags:\n    - mark\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := FileConfigSource{NameOrPath: path}.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !cfg.Slug || !cfg.Autolink {
			t.Errorf("toggles = %+v, want both on", cfg)
		}
		if cfg.Sanitize == nil || !cfg.Sanitize.AllowStandard {
			t.Fatalf("Sanitize = %+v, want standard allowlist", cfg.Sanitize)
		}
		if len(cfg.Sanitize.AllowedTags) != 1 || cfg.Sanitize.AllowedTags[0] != "mark" {
			t.Errorf("AllowedTags = %v", cfg.Sanitize.AllowedTags)
		}
	})

	t.Run("sanitize disabled maps to nil policy", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		if err := os.WriteFile(path, []byte("slug: true\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := FileConfigSource{NameOrPath: path}.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Sanitize != nil {
			t.Errorf("Sanitize = %+v, want nil", cfg.Sanitize)
		}
	})

	t.Run("missing file reports error to resolver", func(t *testing.T) {
		t.Parallel()

		_, err := FileConfigSource{NameOrPath: filepath.Join(t.TempDir(), "absent.yaml")}.Resolve()
		if err == nil {
			t.Fatal("Resolve() = nil error, want not-found")
		}
	})

	t.Run("service falls back when file missing", func(t *testing.T) {
		t.Parallel()

		svc := NewService(WithConfigSource(FileConfigSource{
			NameOrPath: filepath.Join(t.TempDir(), "absent.yaml"),
		}))
		cfg := svc.Config()
		if cfg.Slug || cfg.Sanitize != nil {
			t.Errorf("config = %+v, want default", cfg)
		}
	})
}

func TestDocsPreset(t *testing.T) {
	t.Parallel()

	sanitize := &SanitizePolicy{AllowStandard: true}

	tests := []struct {
		name       string
		opts       PresetOptions
		wantStages []string
	}{
		{
			name:       "no toggles",
			opts:       PresetOptions{},
			wantStages: nil,
		},
		{
			name: "toggle without implementation is a no-op",
			opts: PresetOptions{Slug: true, Autolink: true},
			// no stage implementations supplied
			wantStages: nil,
		},
		{
			name: "all toggles with implementations",
			opts: PresetOptions{
				Slug: true, Autolink: true, Sanitize: sanitize,
				SlugStage:     NewSlugStage(),
				AutolinkStage: NewAutolinkStage(),
				SanitizeStage: NewSanitizeStage(sanitize),
			},
			wantStages: []string{"slug", "autolink", "sanitize"},
		},
		{
			name: "implementation without toggle stays out",
			opts: PresetOptions{
				SlugStage: NewSlugStage(),
			},
			wantStages: nil,
		},
		{
			name: "partial composition keeps order",
			opts: PresetOptions{
				Slug: true, Sanitize: sanitize,
				SlugStage:     NewSlugStage(),
				SanitizeStage: NewSanitizeStage(sanitize),
			},
			wantStages: []string{"slug", "sanitize"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DocsPreset(tt.opts)
			if len(cfg.PostStages) != len(tt.wantStages) {
				t.Fatalf("got %d post-stages, want %d", len(cfg.PostStages), len(tt.wantStages))
			}
			for i, want := range tt.wantStages {
				if got := cfg.PostStages[i].Stage().Name(); got != want {
					t.Errorf("stage[%d] = %q, want %q", i, got, want)
				}
			}
		})
	}
}

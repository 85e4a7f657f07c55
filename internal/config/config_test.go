package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bnnadi/confida-scoring/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then it should carry sensible defaults", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Backend, ShouldEqual, "stub")
			So(cfg.AnalysisTimeout(), ShouldEqual, 30*time.Second)
			So(cfg.ContentWeight+cfg.DeliveryWeight+cfg.TechnicalWeight, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("And a non-positive timeout falls back to the default", func() {
			cfg.AnalysisTimeoutMS = 0
			So(cfg.AnalysisTimeout(), ShouldEqual, 30*time.Second)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("CONFIDA_ADDR", ":9999")
		t.Setenv("CONFIDA_LOG_LEVEL", "debug")
		t.Setenv("CONFIDA_ANALYSIS_TIMEOUT_MS", "5000")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.AnalysisTimeout(), ShouldEqual, 5*time.Second)
			})
		})
	})

	Convey("Given an unknown backend", t, func() {
		t.Setenv("CONFIDA_BACKEND", "frontier")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then it should fail with an invalid-config kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a remote backend without an api key", t, func() {
		t.Setenv("CONFIDA_BACKEND", "gemini")
		os.Unsetenv("CONFIDA_API_KEY")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then it should fail", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

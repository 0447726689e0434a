package config_test

import (
	"runtime"
	"testing"

	"github.com/C0nnectify/edulens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeCacheSize, convey.ShouldEqual, 500_000)
			convey.So(cfg.FuzzyCeiling, convey.ShouldEqual, 5_000)
			convey.So(cfg.FuzzySimilarity, convey.ShouldEqual, 90)
			convey.So(cfg.ValFraction, convey.ShouldEqual, 0.15)
			convey.So(cfg.TestFraction, convey.ShouldEqual, 0.15)
			convey.So(cfg.SplitSeed, convey.ShouldEqual, 42)
			convey.So(cfg.StoreBackend, convey.ShouldEqual, config.StoreMemory)
		})
	})
}

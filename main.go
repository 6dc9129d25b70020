package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pdf-voice/backend/api/handler"
	"pdf-voice/backend/api/route"
	"pdf-voice/backend/common"
	"pdf-voice/backend/library/audiocache"
	"pdf-voice/backend/library/lock"
	"pdf-voice/backend/library/mail"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/library/pdftext"
	"pdf-voice/backend/library/tts"
	"pdf-voice/backend/model"
	"pdf-voice/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()
	if *common.PrintVersion {
		fmt.Println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	if err := common.LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if err := common.SetupLogger(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logger:", err)
		os.Exit(1)
	}
	defer common.SyncLogger()

	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	extractor, err := pdftext.NewExtractor(common.ExtractCacheSize)
	if err != nil {
		common.FatalLog(err)
	}
	synth := tts.NewGoogleTTS(common.TTSLang, common.TTSTLD, common.TTSEndpoint, common.TTSTimeout)

	var locker lock.Locker = lock.Nop{}
	if common.RedisEnabled {
		locker = lock.NewRedisLocker(common.RDB, "pv:lock:audio:", 2*common.TTSTimeout)
	}
	cache := audiocache.New(common.AudioRoot, synth,
		audiocache.WithLocker(locker),
		audiocache.WithMetrics(m))

	files := service.NewFileRegistry(model.DB)
	h := &handler.Handler{
		DB:          model.DB,
		Credentials: service.NewCredentialStore(model.DB),
		Files:       files,
		Uploader:    service.NewUploader(common.UploadRoot, int64(common.MaxUploadMB)<<20, files, m),
		Converter:   service.NewConverter(files, extractor, cache, m),
		Audio:       cache,
		Tokens:      service.NewTokenService(common.JWTSecret, common.JWTExpiry, common.RDB),
		Notifier:    mail.NewSMTPNotifier(),
	}

	store, err := sessionStore()
	if err != nil {
		common.FatalLog(err)
	}

	server := gin.New()
	server.Use(gin.Recovery())
	server.MaxMultipartMemory = int64(common.MaxUploadMB) << 20
	if err := route.SetRouter(server, h, route.Options{
		SessionStore: store,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
	}); err != nil {
		common.FatalLog(err)
	}

	port := strconv.Itoa(*common.Port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		common.SysLog("Server listening on port: " + port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.FatalLog("failed to start server: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	common.SysLog("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.Logger().Error("server shutdown", zap.Error(err))
	}

	h.Notifier.Wait()
	if err := model.CloseDB(); err != nil {
		common.Logger().Error("close database", zap.Error(err))
	}
	if err := common.CloseRedisClient(); err != nil {
		common.Logger().Error("close redis", zap.Error(err))
	}
}

// sessionStore keeps sessions in Redis when it is configured, otherwise in
// signed cookies.
func sessionStore() (sessions.Store, error) {
	if !common.RedisEnabled {
		return cookie.NewStore([]byte(common.SessionSecret)), nil
	}
	opt, err := common.ParseRedisOption()
	if err != nil {
		return nil, err
	}
	return redis.NewStore(10, "tcp", opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"erebus-server/internal/agent"
	"erebus-server/internal/domain"
	"erebus-server/internal/engine"
	"erebus-server/internal/infrastructure/archive"
	"erebus-server/internal/infrastructure/replay"
	"erebus-server/internal/network"
	"erebus-server/internal/server"
	"erebus-server/internal/version"
	"erebus-server/pkg/logger"
	"erebus-server/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed        int64
		phrase      string
		replayPath  string
		recordDir   string
		archiveDSN  string
		archiveFile string
		port        string
		debug       bool
		cheats      bool
		botRuns     int
	)
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master campaign seed (0 for random)")
	flag.StringVar(&phrase, "phrase", "", "Seed phrase, overrides -seed")
	flag.StringVar(&replayPath, "replay", "", "Path to .erbr recording to verify headlessly")
	flag.StringVar(&recordDir, "record", "", "Directory for run recordings (empty disables)")
	flag.StringVar(&archiveDSN, "archive-dsn", "", "PostgreSQL DSN for the run archive (or env ES_ARCHIVE_DSN)")
	flag.StringVar(&archiveFile, "archive-file", "runs.json", "JSON fallback for the run archive (empty disables)")
	flag.StringVar(&port, "port", "", "HTTP port (default env ES_PORT or 8080)")
	flag.BoolVar(&debug, "debug", false, "Enable integrity assertions and debug routes")
	flag.BoolVar(&cheats, "cheats", false, "Enable the CHEAT command")
	flag.IntVar(&botRuns, "bot", 0, "Smoke mode: autoplay N runs and exit")
	flag.Parse()

	logger.Log.Info("Starting Erebus Station server...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	cfg.DebugChecks = debug
	cfg.Cheats = cheats
	switch {
	case phrase != "":
		cfg.Seed = utils.StringToSeed(phrase)
		logger.Log.Infof("🎲 Seed phrase %q -> Master Seed: %d", phrase, cfg.Seed)
	case seed != 0:
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	default:
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	// РЕЖИМ ПРОВЕРКИ ЗАПИСИ
	if replayPath != "" {
		runReplay(replayPath)
		return
	}

	if port == "" {
		port = os.Getenv("ES_PORT")
	}
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	hub := network.NewBroadcaster()

	store := openArchive(archiveDSN, archiveFile)
	if store != nil {
		defer store.Close()
	}

	var tapes *replay.Library
	if recordDir != "" {
		tapes = replay.NewLibrary(recordDir)
		logger.Log.Infof("Recording runs to %s", recordDir)
	}

	gameService := engine.NewService(cfg, hub, store, tapes)

	// ДЫМОВОЙ РЕЖИМ: бот доигрывает N забегов и процесс выходит.
	if botRuns > 0 {
		logger.Log.Infof("🤖 Mode: Smoke run, %d campaigns", botRuns)
		bot := agent.NewBot(gameService, botRuns)
		go bot.Run()
		<-bot.Done()
		gameService.Shutdown()
		logger.Log.Info("Done.")
		return
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, port, debug)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Дожидаемся, пока сессии допишут записи и архив.
	gameService.Shutdown()

	logger.Log.Info("Done.")
}

// openArchive выбирает хранилище журнала: PostgreSQL при наличии DSN,
// иначе локальный JSON-файл. Пустые настройки отключают архив совсем.
func openArchive(dsn, file string) archive.Store {
	if dsn == "" {
		dsn = os.Getenv("ES_ARCHIVE_DSN")
	}

	if dsn != "" {
		store, err := archive.NewPostgresStore(dsn)
		if err != nil {
			logger.Log.WithError(err).Warn("Archive database unavailable, falling back to JSON file")
		} else {
			logger.Log.Info("Run archive: PostgreSQL")
			return store
		}
	}

	if file == "" {
		logger.Log.Info("Run archive disabled")
		return nil
	}

	store, err := archive.NewJSONStore(file)
	if err != nil {
		logger.Log.WithError(err).Warn("Run archive disabled")
		return nil
	}
	logger.Log.Infof("Run archive: %s", file)
	return store
}

// runReplay прогоняет запись через свежую сессию с записанным зерном
// и печатает хеш финального состояния. Два прогона одной записи обязаны
// дать один и тот же хеш.
func runReplay(path string) {
	logger.Log.Info("💿 Mode: Replay Verification")

	rec, err := replay.Load(path)
	if err != nil {
		logger.Log.Fatal("Failed to load recording:", err)
	}

	cfg := engine.NewConfig()
	cfg.Seed = rec.Seed

	session, err := engine.NewSession("replay", cfg, rec.Profile)
	if err != nil {
		logger.Log.Fatal("Failed to rebuild session:", err)
	}
	session.TakeEvents() // кадр приземления в хеш не входит

	for _, frame := range rec.Actions {
		session.ResolveTurn(domain.InternalCommand{Action: frame.Action, Payload: frame.Payload})
	}

	state := engine.BuildState(session, nil)
	data, err := json.Marshal(state)
	if err != nil {
		logger.Log.Fatal("Failed to encode final state:", err)
	}

	hash := fnv.New64a()
	_, _ = hash.Write(data)

	logger.Log.WithFields(logrus.Fields{
		"actions":    len(rec.Actions),
		"turn":       state.Turn,
		"session":    state.Session,
		"site":       state.Site,
		"depth":      state.Depth,
		"state_hash": fmt.Sprintf("%016x", hash.Sum64()),
	}).Info("Replay complete")
}

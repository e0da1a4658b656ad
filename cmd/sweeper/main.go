package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

var (
	log = logrus.New()

	configPath string
	cfg        = config.Default()

	errQuit = errors.New("quit")
)

func init() {
	const (
		defaultConfigPath = "sweeper.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}

	for _, l := range []*logrus.Logger{log, mines.Log, session.Log, store.Log} {
		l.SetLevel(logLevel)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}

	if cfg.LogFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	flag.Parse()

	if err := config.ReadConfig(configPath, cfg); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to read config %s: %s", configPath, err.Error())
	}

	setupLogging()
	log.WithFields(cfg.Fields()).Debug("config")

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}

	times, err := store.Open(cfg.SaveFile)
	if err != nil {
		// best times are a nicety, the game works without them
		log.Warn("unable to open best time store: ", err)
		times = store.Discard{}
	}

	sess, err := session.New(cfg, times, createRand(), session.SystemClock())
	if err != nil {
		log.Fatal("unable to start a session: ", err)
	}

	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	fmt.Println("commands: r x y | f x y | c x y | n | d <name|W:H:M:s> | z | q")
	render(sess)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := execute(sess, scanner.Text()); errors.Is(err, errQuit) {
				return err
			} else if err != nil {
				fmt.Println(err)
				continue
			}
			render(sess)
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		return errQuit
	})
	g.Go(func() error {
		<-gCtx.Done()
		if !errors.Is(context.Cause(gCtx), errQuit) {
			// a blocked stdin read cannot be interrupted, bail out
			fmt.Println()
			os.Exit(130)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		log.Printf("exit reason: %s\n", err)
	}
}

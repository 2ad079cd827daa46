// RecipeAI — snap your ingredients, cook what they can make.
//
// Usage:
//
//	recipeai [-verbose] [-quiet] [photo.jpg ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/DVDHSN/RecipeAI/internal/audio"
	"github.com/DVDHSN/RecipeAI/internal/display"
	"github.com/DVDHSN/RecipeAI/internal/gemini"
	"github.com/DVDHSN/RecipeAI/internal/history"
	"github.com/DVDHSN/RecipeAI/internal/logger"
	"github.com/DVDHSN/RecipeAI/internal/speech"
	"github.com/DVDHSN/RecipeAI/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".recipeai-logs/recipeai.log", "file to write logs to (use \"stderr\" to log to console)")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech narration in cooking mode")
	historyFile := flag.String("history-file", ".recipeai/cookbook.json", "file persisting the cookbook")
	voice := flag.String("voice", speech.DefaultVoice, "TTS voice name")
	model := flag.String("model", gemini.DefaultModel, "Gemini model for analysis and generation")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiKey := os.Getenv(speech.EnvGeminiAPIKey)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "error: %s is not set (put it in .env or the environment)\n", speech.EnvGeminiAPIKey)
		os.Exit(1)
	}

	// Wire dependencies.
	analyzer, err := gemini.NewClient(ctx, apiKey, log, gemini.WithModel(*model))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: gemini client: %v\n", err)
		os.Exit(1)
	}

	store := history.NewFileStore(*historyFile, log)
	eng := workflow.New(analyzer, store, log)

	// TTS is best-effort: a machine without an audio device still gets the
	// full workflow, just silent cooking mode.
	var speaker *speech.Controller
	if !*noSpeech {
		sink, err := audio.NewSink(log)
		if err != nil {
			log.Error("audio init failed, speech disabled: %v", err)
		} else {
			synth := speech.NewGeminiClient(apiKey, log, speech.WithVoice(*voice))
			cache := speech.NewCache(synth, sink, log)
			speaker = speech.NewController(cache, sink, log)
			log.Info("TTS enabled (voice=%s)", *voice)
		}
	}

	app := newApp(eng, speaker, log)

	fmt.Println(display.RenderBanner())
	fmt.Println(display.Hint("Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Photos on the command line start an analysis immediately.
	app.run(ctx, flag.Args())

	if speaker != nil {
		speaker.Close()
	}
}

// Command practice runs a typing session in the terminal against a running
// server: target words come from the words endpoint, keystroke telemetry
// streams to the ingestion endpoint, and the finished summary is posted to
// the results endpoint. Input is read line by line, so each enter submits
// the typed characters plus a word separator.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/config"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/engine"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/logging"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/telemetry"

	"go.uber.org/zap"
)

func main() {
	server := flag.String("server", "http://localhost:5050", "base URL of the running server")
	mode := flag.String("mode", "time", "session mode: time or words")
	target := flag.Int("target", 30, "seconds in time mode, word count in words mode")
	difficulty := flag.String("difficulty", "medium", "easy, medium or hard")
	flag.Parse()

	sessionMode := engine.Mode(*mode)
	if sessionMode != engine.ModeTime && sessionMode != engine.ModeWords {
		fmt.Fprintln(os.Stderr, "mode must be time or words")
		os.Exit(2)
	}

	log, err := logging.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	supply := telemetry.NewHTTPWordSupply(*server + "/api/words")
	sink := telemetry.NewHTTPSink(*server+"/api/telemetry", log)

	words, err := supply.RequestWords(context.Background(), 50, *difficulty)
	if err != nil {
		log.Warn("Words endpoint unreachable, using the local pool", zap.Error(err))
		words = nil
	}

	sess := engine.New(engine.Options{
		Mode:          sessionMode,
		Target:        *target,
		Difficulty:    *difficulty,
		Words:         words,
		Supply:        supply,
		Sink:          sink,
		FlushSize:     config.Conf.Telemetry.FlushSize,
		FlushInterval: time.Duration(config.Conf.Telemetry.FlushIntervalMs) * time.Millisecond,
	})

	fmt.Println("Type the words below. Enter submits a word, ctrl-d finishes early.")
	fmt.Println()
	fmt.Println(strings.Join(sess.Words(), " "))
	fmt.Println()

	// All engine calls stay on this goroutine; stdin is funneled through a
	// channel so the timer can keep ticking while a read is pending.
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for sess.State() != engine.StateCompleted {
		select {
		case line, ok := <-lines:
			if !ok {
				sess.Complete()
				continue
			}
			if line == "" {
				continue
			}
			for _, r := range line {
				sess.Keystroke(r)
			}
			sess.Keystroke(engine.Separator)
			m := sess.Metrics()
			fmt.Printf("raw %.1f wpm   net %.1f wpm   accuracy %.1f%%\n",
				m.RawWPM, m.NetWPM, m.Accuracy)
		case <-ticker.C:
			sess.Tick()
		}
	}

	result := sess.Result(nil)
	fmt.Println()
	fmt.Printf("Finished: %d words, raw %.1f wpm, net %.1f wpm, accuracy %.1f%%\n",
		len(sess.History()), result.RawWPM, result.NetWPM, result.Accuracy)
	if idle := sess.IdleTime(); idle > 0 {
		fmt.Printf("Idle time: %s\n", idle.Round(time.Second))
	}

	if err := postResult(*server, result); err != nil {
		log.Warn("Failed to upload session result", zap.Error(err))
		return
	}
	fmt.Printf("Chart: %s/api/results/%s/chart\n", *server, result.SessionID)
}

func postResult(server string, result models.SessionResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return err
	}
	resp, err := http.Post(server+"/api/results", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("results endpoint returned %d", resp.StatusCode)
	}
	return nil
}

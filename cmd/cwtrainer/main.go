// Command cwtrainer is the thin wiring entrypoint: it loads configuration,
// builds the QSO state machine with its pattern engine and station
// registry, plus a session record and metrics, and drives the machine from
// a stdin simulation loop in which each line stands for one decoded
// message. No audio decoder or synthesizer is wired in. It is deliberately not a full interactive REPL or GUI;
// those are external collaborators per spec.md §6.
//
// Grounded on the cmd/<tool>/main.go layout of doismellburning-samoyed's
// module tree, and that repo's spf13/pflag usage for scalar flag overrides.
package main

import (
	"bufio"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/cwsl/cwtrainer/internal/config"
	"github.com/cwsl/cwtrainer/internal/metrics"
	"github.com/cwsl/cwtrainer/internal/patterns"
	"github.com/cwsl/cwtrainer/internal/qso"
	"github.com/cwsl/cwtrainer/internal/session"
	"github.com/cwsl/cwtrainer/internal/stations"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML config file")
	listDevices := flag.Bool("list-devices", false, "list available audio devices and exit")

	myCall := flag.String("my-call", "", "override qso.my_call")
	cqMode := flag.String("cq-mode", "", "override qso.cq_mode (simple|parks|summits)")
	maxStations := flag.Int("max-stations", 0, "override qso.max_stations")
	wpm := flag.Float64("wpm", 0, "override encoder.wpm")
	toneHz := flag.Float64("tone-hz", 0, "override encoder.tone_hz")
	flag.Parse()

	if *listDevices {
		fmt.Println("(no audio backend is wired in this build; stdin simulation mode only)")
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("[Main] config error: %v", err)
		return 1
	}
	applyOverrides(cfg, *myCall, *cqMode, *maxStations, *wpm, *toneHz)

	callsigns, parks := loadPools(cfg)

	pe := patterns.Load(cfg.QSO.ExchangePatternsFile)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	reg := stations.New(stations.Config{
		WPMRange:  stations.Range{Start: cfg.Encoder.WPMOutStart, End: cfg.Encoder.WPMOutEnd},
		ToneRange: stations.Range{Start: cfg.Encoder.ToneHzOutStart, End: cfg.Encoder.ToneHzOutEnd},
	}, rnd)

	machine := qso.New(qsoConfig(cfg), pe, reg, callsigns, parks, rnd)
	sess := session.New()
	met := metrics.New()

	fmt.Printf("cwtrainer ready. my_call=%s cq_mode=%s. Type Morse-equivalent text and press enter.\n", cfg.QSO.MyCall, cfg.QSO.CQMode)
	fmt.Println("Commands: /reset  /export <path>  /quit")

	recorded := 0 // completions already handed to sess
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case line == "/quit":
			return 0
		case line == "/reset":
			machine.Reset()
			sess.Reset()
			fmt.Println("state reset")
			continue
		case strings.HasPrefix(line, "/export"):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/export"))
			if path == "" {
				path = "session.json.gz"
			}
			if err := exportSession(sess, cfg, path); err != nil {
				fmt.Printf("export failed: %v\n", err)
			} else {
				fmt.Printf("exported to %s\n", path)
			}
			continue
		}

		sess.AppendRX(line)
		met.DecodedMessages.Inc()
		result := machine.Process(line)
		if !result.Accepted {
			met.RejectedExchanges.Inc()
			for _, e := range result.Errors {
				fmt.Println("! " + e)
			}
			continue
		}
		for _, r := range result.Replies {
			sess.AppendTX(r.Text)
			fmt.Println("-> " + r.Text)
		}
		completions := machine.Completions()
		for _, rec := range completions[recorded:] {
			sess.AppendCompletion(rec.MyCall, rec.OtherCall)
		}
		recorded = len(completions)
		met.ActiveCallers.Set(float64(machine.ActiveCallers()))
	}
	return 0
}

func applyOverrides(cfg *config.Config, myCall, cqMode string, maxStations int, wpm, toneHz float64) {
	if myCall != "" {
		cfg.QSO.MyCall = myCall
	}
	if cqMode != "" {
		cfg.QSO.CQMode = cqMode
	}
	if maxStations > 0 {
		cfg.QSO.MaxStations = maxStations
	}
	if wpm > 0 {
		cfg.Encoder.WPM = wpm
	}
	if toneHz > 0 {
		cfg.Encoder.ToneHz = toneHz
	}
}

func loadPools(cfg *config.Config) (callsigns, parks []string) {
	if cfg.QSO.CallsignsFile != "" {
		pool, err := config.LoadCallsignPool(cfg.QSO.CallsignsFile)
		if err != nil {
			log.Printf("[Main] callsign pool: %v", err)
		} else {
			callsigns = pool
		}
	}
	if cfg.QSO.ParksFile != "" {
		pool, err := config.LoadParkPool(cfg.QSO.ParksFile)
		if err != nil {
			log.Printf("[Main] park pool: %v", err)
		} else {
			parks = pool
		}
	}
	return callsigns, parks
}

func qsoConfig(cfg *config.Config) qso.Config {
	mode := qso.Parks
	switch strings.ToLower(cfg.QSO.CQMode) {
	case "simple":
		mode = qso.Simple
	case "summits":
		mode = qso.Summits
	}
	return qso.Config{
		MyCall:                  cfg.QSO.MyCall,
		OtherCall:               cfg.QSO.OtherCall,
		CQMode:                  mode,
		MaxStations:             cfg.QSO.MaxStations,
		AutoIncomingAfterQSO:    cfg.QSO.AutoIncomingAfterQSO,
		AutoIncomingProbability: cfg.QSO.AutoIncomingProbability,
		P2PProbability:          cfg.QSO.P2PProbability,
		MyParkRef:               cfg.QSO.MyParkRef,
		Allow599:                cfg.QSO.Allow599,
		AllowTU:                 cfg.QSO.AllowTU,
		UseProsigns:             cfg.QSO.UseProsigns,
		ProsignLiteral:          cfg.QSO.ProsignLiteral,
		IgnoreBK:                cfg.QSO.IgnoreBK,
		IgnoreFillTokens:        cfg.QSO.IgnoreFillTokens,
	}
}

func exportSession(sess *session.Session, cfg *config.Config, path string) error {
	data, err := sess.Export(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Simulator orchestrating the seal population and telemetry steps.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/agent"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/habitat"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/logging"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.Row) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]telemetry.Row) error
}

// DailyWriter handles daily aggregate rows.
type DailyWriter interface {
	WriteDaily(telemetry.DailyRow) error
}

// Simulator advances the full population through a fixed batch horizon with
// one synchronization barrier per timestep.
type Simulator struct {
	runID       string
	cfg         *config.SimulationConfig
	sealCfg     *config.SealConfig
	buffer      *envgrid.Buffer
	clock       *Clock
	seals       []*agent.Seal
	writer      TelemetryWriter
	dailyWriter DailyWriter
	workers     int
	horizon     int
	deathsToday int
}

// NewSimulator initializes the population from colony config. Initial
// positions are jittered uniformly about each colony center using streams
// derived from the run seed, so runs stay reproducible.
func NewSimulator(runID string, cfg *config.SimulationConfig, buffer *envgrid.Buffer,
	writer TelemetryWriter, dailyWriter DailyWriter) (*Simulator, error) {

	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}
	if len(cfg.Colonies) == 0 {
		return nil, fmt.Errorf("no colonies defined in the configuration")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s := &Simulator{
		runID:       runID,
		cfg:         cfg,
		sealCfg:     &cfg.Seal,
		buffer:      buffer,
		clock:       NewClock(start, cfg.StepHours),
		writer:      writer,
		dailyWriter: dailyWriter,
		workers:     workers,
		horizon:     cfg.DurationDays * 24 / cfg.StepHours,
	}

	idx := 0
	for _, col := range cfg.Colonies {
		for i := 0; i < col.Count; i++ {
			// Step index -1 reserves a stream for initial conditions.
			rng, _ := agent.Stream(cfg.Seed, idx, -1)
			lat := col.CenterLat + (rng.Float64()*2-1)*col.Scatter
			lon := col.CenterLon + (rng.Float64()*2-1)*col.Scatter
			s.seals = append(s.seals, agent.New(col.Name, idx, cfg.Seed, lat, lon, s.sealCfg, rng))
			idx++
		}
	}
	return s, nil
}

// Population returns the current number of live seals.
func (s *Simulator) Population() int { return len(s.seals) }

// Clock exposes the simulation clock, mainly for tests.
func (s *Simulator) Clock() *Clock { return s.clock }

// Run executes the batch loop until the horizon is reached, the population
// goes extinct, or the context is cancelled. It is the run's only driver;
// there is no mid-step cancellation.
func (s *Simulator) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Info("starting simulation",
		"run_id", s.runID, "population", len(s.seals),
		"horizon_steps", s.horizon, "workers", s.workers)

	for s.clock.Step() < s.horizon {
		select {
		case <-ctx.Done():
			log.Info("simulation cancelled", "step", s.clock.Step())
			return ctx.Err()
		default:
		}
		if err := s.stepOnce(ctx); err != nil {
			return err
		}
		if len(s.seals) == 0 {
			log.Warn("population extinct", "step", s.clock.Step())
			break
		}
	}
	log.Info("simulation complete", "steps", s.clock.Step(), "survivors", len(s.seals))
	return nil
}

// stepOnce advances every live agent one timestep against one immutable
// snapshot, appends telemetry, and aggregates daily statistics.
func (s *Simulator) stepOnce(ctx context.Context) error {
	log := logging.FromContext(ctx)

	snap := s.buffer.Refresh(s.clock.Now())
	step := s.clock.Step()
	isDay := s.clock.IsDay()
	dt := float64(s.clock.StepHours())

	// One telemetry slot per live-at-start agent; workers write disjoint
	// indices, so the result is independent of partitioning and order.
	rows := make([]telemetry.Row, len(s.seals))

	var wg sync.WaitGroup
	chunk := (len(s.seals) + s.workers - 1) / s.workers
	for w := 0; w < s.workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if lo >= len(s.seals) {
			break
		}
		if hi > len(s.seals) {
			hi = len(s.seals)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				s.updateOne(s.seals[i], snap, step, isDay, dt)
				rows[i] = s.rowFor(s.seals[i], snap, step)
			}
		}(lo, hi)
	}
	wg.Wait()

	if bw, ok := s.writer.(batchWriter); ok {
		if err := bw.WriteBatch(rows); err != nil {
			log.Error("batch write failed", "err", err)
		}
	} else {
		for _, row := range rows {
			if err := s.writer.Write(row); err != nil {
				log.Error("write failed", "seal_id", row.SealID, "err", err)
			}
		}
	}

	// Dead agents got their final row above; drop them now.
	live := s.seals[:0]
	for _, seal := range s.seals {
		if seal.Alive {
			live = append(live, seal)
		} else {
			s.deathsToday++
			log.Info("seal died", "seal_id", seal.ID, "cause", seal.Diagnostic, "step", step)
		}
	}
	s.seals = live

	day := s.clock.Day()
	s.clock.Advance()

	// Step sizes that do not divide 24 still cross day boundaries mid-step.
	if s.clock.Day() > day && s.dailyWriter != nil {
		daily := AggregateDaily(s.runID, s.clock.Day(), s.clock.Now(), s.seals, s.deathsToday)
		s.deathsToday = 0
		if err := s.dailyWriter.WriteDaily(daily); err != nil {
			log.Error("daily stats write failed", "err", err)
		}
	}
	return nil
}

// updateOne runs one agent's FSM step with per-agent fault isolation: a
// panic or numerical fault kills the agent with a diagnostic and never
// aborts the population step.
func (s *Simulator) updateOne(seal *agent.Seal, snap envgrid.Snapshot, step int, isDay bool, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			seal.Kill(fmt.Sprintf("fault: %v", r))
		}
	}()
	rng, src := agent.Stream(s.cfg.Seed, seal.Index, step)
	seal.Step(agent.Env{
		Snap:  snap,
		Cfg:   s.sealCfg,
		Rand:  rng,
		Src:   src,
		IsDay: isDay,
		DT:    dt,
	})
}

// rowFor snapshots one agent into an immutable telemetry row, including the
// environmental context sampled at its position.
func (s *Simulator) rowFor(seal *agent.Seal, snap envgrid.Snapshot, step int) telemetry.Row {
	chl := snap.Value(envgrid.VarChlorophyll, seal.Lat, seal.Lon)
	return telemetry.Row{
		RunID:       s.runID,
		SealID:      seal.ID,
		Step:        step,
		Lat:         seal.Lat,
		Lon:         seal.Lon,
		State:       string(seal.State),
		Energy:      seal.Energy,
		Stomach:     seal.Stomach,
		Alive:       seal.Alive,
		WaveHeight:  snap.Value(envgrid.VarWaveHeight, seal.Lat, seal.Lon),
		Chlorophyll: chl,
		Temperature: snap.Value(envgrid.VarTemperature, seal.Lat, seal.Lon),
		TidePhase:   snap.TidePhase,
		HSI:         habitat.Suitability(chl, s.sealCfg.HSIChlThreshold, s.sealCfg.HSIFloor),
		Timestamp:   snap.Time,
	}
}
